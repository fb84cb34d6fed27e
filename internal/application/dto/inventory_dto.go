package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest cuerpo de POST /api/stock/restock.
type RestockRequest struct {
	ProductID  string           `json:"productId"`
	Qty        int              `json:"qty"`
	UnitCost   *decimal.Decimal `json:"unitCost"`
	UpdateCost bool             `json:"updateCost"`
	Supplier   string           `json:"supplier"`
	Note       string           `json:"note"`
}

// MovementProduct datos del producto incluidos en el listado de movimientos.
type MovementProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// StockMovementResponse movimiento de inventario.
type StockMovementResponse struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	ProductID string           `json:"productId"`
	Product   *MovementProduct `json:"product,omitempty"`
	Qty       int              `json:"qty"`
	UnitCost  decimal.Decimal  `json:"unitCost"`
	Supplier  string           `json:"supplier"`
	Note      string           `json:"note"`
	Reference string           `json:"reference"`
	CreatedBy string           `json:"createdBy,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// RestockResponse producto actualizado + movimiento creado.
type RestockResponse struct {
	Product  ProductResponse       `json:"product"`
	Movement StockMovementResponse `json:"movement"`
}

// MovementListQuery filtros de GET /api/stock/movements.
type MovementListQuery struct {
	ProductID string
	PageQuery
}
