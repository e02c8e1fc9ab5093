// Package domain contains core business entities and rules.
package domain

// attributionSeparator sits between the quote text and its author.
// The space before the hyphen and the missing space after it are part of
// the published response format.
const attributionSeparator = " -"

// Quote is a single inspirational quote and its attribution.
// It is built fresh for every request and never mutated afterwards.
type Quote struct {
	// Text is the quotation body.
	Text string

	// Author is who the quote is attributed to. May be empty.
	Author string
}

// Format renders the quote as "<text> -<author>".
// An empty author yields "<text> -".
func (q *Quote) Format() string {
	return q.Text + attributionSeparator + q.Author
}

// String implements fmt.Stringer.
func (q *Quote) String() string {
	return q.Format()
}
