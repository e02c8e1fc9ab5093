package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fhsinchy/inspire/internal/adapters/http/dto"
	"github.com/fhsinchy/inspire/internal/app"
)

// contentTypeText is the media type of the /inspire body.
const contentTypeText = "text/plain; charset=utf-8"

// QuoteHandler serves quotes from the fetcher. It never reads the request
// body, query or headers, so every request gets the same treatment.
type QuoteHandler struct {
	fetcher *app.QuoteFetcher
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(fetcher *app.QuoteFetcher) *QuoteHandler {
	return &QuoteHandler{
		fetcher: fetcher,
	}
}

// Inspire handles GET /inspire.
// Responds 200 with the attributed quote as plain text. Any fetch failure
// answers 500 with the JSON error envelope; there is no fallback quote.
//
// @Summary Get an inspirational quote
// @Produce plain
// @Success 200 {string} string "Stay hungry. -Anon"
// @Failure 500 {object} dto.ErrorResponse
// @Router /inspire [get]
func (h *QuoteHandler) Inspire(c *gin.Context) {
	text, err := h.fetcher.Fetch(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// c.Data rather than c.String: quotes may contain '%'.
	c.Data(http.StatusOK, contentTypeText, []byte(text))
}

// GetQuote handles GET /api/v1/quote.
// Same single upstream call as Inspire, returned as JSON.
//
// @Summary Get a quote as JSON
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/quote [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.fetcher.FetchQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterRoutes registers GET /inspire on root and GET /quote on api.
func (h *QuoteHandler) RegisterRoutes(root gin.IRoutes, api *gin.RouterGroup) {
	root.GET("/inspire", h.Inspire)
	api.GET("/quote", h.GetQuote)
}
