// Package acl is the anti-corruption layer between the upstream quote
// provider and the domain.
//
// Upstream DTOs never leave this package. Every failure is translated into
// one of the domain upstream errors:
//
//   - transport failure (refused, reset, DNS, timeout) → [domain.ErrUpstreamUnavailable]
//   - non-2xx status → [domain.ErrUpstreamStatus]
//   - body that is not JSON, or lacks a string quote or author → [domain.ErrMalformedResponse]
//
// [InspirationClient] is the only adapter. It embeds [BaseAdapter], which owns
// the request and error mapping so a second provider would only add its DTO
// and translation.
package acl
