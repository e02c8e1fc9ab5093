package dto

import "github.com/fhsinchy/inspire/internal/domain"

// QuoteResponse is the JSON body of GET /api/v1/quote.
type QuoteResponse struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// NewQuoteResponse converts a domain quote. Text is the same attributed
// string served by /inspire.
func NewQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		Quote:  q.Text,
		Author: q.Author,
		Text:   q.Format(),
	}
}
