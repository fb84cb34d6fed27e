package dto

import "github.com/shopspring/decimal"

func init() {
	// Montos como números JSON (20.23), no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PageQuery paginación por número de página (1-based).
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica defaults y tope: page >= 1, 1 <= limit <= max.
func (p PageQuery) Normalize(defLimit, maxLimit int) PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset filas a saltar para la página actual.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse lista paginada genérica.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPage arma la respuesta; pages es al menos 1.
func NewPage[T any](items []T, q PageQuery, total int) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 1
	if q.Limit > 0 && total > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return PageResponse[T]{Items: items, Page: q.Page, Limit: q.Limit, Total: total, Pages: pages}
}

// ItemsResponse lista sin paginar ({items: [...]}).
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// OKResponse confirmación simple ({ok: true}).
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}
