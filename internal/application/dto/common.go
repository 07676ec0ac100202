package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y montos viajan como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Códigos de error legibles por máquina.
const (
	CodeValidation          = "validation"
	CodeNotFound            = "not_found"
	CodeInsufficientBalance = "insufficient_balance"
	CodeConflict            = "conflict"
	CodeStorage             = "storage"
	CodeInternal            = "internal"
	CodeCanceled            = "canceled"
)
