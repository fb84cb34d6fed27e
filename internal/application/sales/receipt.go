package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una orden a partir de su snapshot.
type ReceiptUseCase struct {
	orders   repository.OrderRepository
	renderer ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders repository.OrderRepository, renderer ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, renderer: renderer}
}

// Receipt devuelve el PDF y el nombre de archivo sugerido. Las órdenes anuladas también se imprimen.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", errOrderNotFound
	}
	pdf, err := uc.renderer.RenderReceipt(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", order.Number), nil
}
