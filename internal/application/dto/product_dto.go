package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	SKU               string           `json:"sku"`
	Active            *bool            `json:"active"`
}

// UpdateProductRequest actualización parcial. StockQty no es editable: cambia vía reposición o facturas.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	SKU               *string          `json:"sku"`
	Active            *bool            `json:"active"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Search   string
	Category string
	Active   *bool
	PageQuery
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	StockQty          int             `json:"stockQty"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	SKU               string          `json:"sku"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
