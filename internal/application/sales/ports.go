package sales

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ReceiptRenderer genera la representación PDF de una orden.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}

// OrderRecorder recibe cada venta confirmada (métricas).
type OrderRecorder interface {
	RecordOrder(method string)
}

// RecorderFunc adapta una función a OrderRecorder.
type RecorderFunc func(method string)

func (f RecorderFunc) RecordOrder(method string) { f(method) }
