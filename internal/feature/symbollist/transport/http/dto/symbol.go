// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem represents a tracked symbol in the API response.
// Internal fields (ID, is_active, sort_key) are not exposed.
type SymbolItem struct {
	Code     string `json:"code"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Market   string `json:"market,omitempty"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// AddSymbolRequest is the body of POST /symbols.
// market is the quote currency and is required for forex and crypto.
type AddSymbolRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=stock forex crypto"`
	Symbol string `json:"symbol" binding:"required"`
	Market string `json:"market"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
