// Package clients provides the instrumented HTTP client used for upstream calls.
package clients

import "errors"

// ErrRequestFailed wraps every transport-level failure: refused or reset
// connections, DNS errors, timeouts and canceled contexts. Callers translate
// it into a domain error; it is never retried here.
var ErrRequestFailed = errors.New("request failed")
