package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"storefront_api/internal/storefront/business/services/cart"
	"storefront_api/pkg/logger"
)

// maxQuoteBody bounds the quote request body.
const maxQuoteBody = 1 << 20

type CartHandler struct {
	quoter *cart.Quoter
	log    logger.Logger
}

func NewCartHandler(quoter *cart.Quoter, log logger.Logger) *CartHandler {
	return &CartHandler{quoter: quoter, log: logger.OrDiscard(log)}
}

// QuoteRequest is either {"items": [...]} or the bare array of lines.
type QuoteRequest struct {
	Items []cart.Line `json:"items"`
}

func (q *QuoteRequest) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &q.Items)
	}
	type wrapped QuoteRequest
	var w wrapped
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = QuoteRequest(w)
	return nil
}

func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuoteBody)).Decode(&req); err != nil {
		writeError(w, r, h.log, badRequest{reason: "decode quote request: " + err.Error()})
		return
	}
	quote, err := h.quoter.Quote(r.Context(), req.Items)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, quote)
}
