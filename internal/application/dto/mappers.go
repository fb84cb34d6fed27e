package dto

import "github.com/jhoicas/cafe-pos-api/internal/domain/entity"

// FromProduct convierte la entidad en su representación HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Price:             p.Price,
		Cost:              p.Cost,
		StockQty:          p.StockQty,
		LowStockThreshold: p.LowStockThreshold,
		SKU:               p.SKU,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Category:  it.Category,
			Price:     it.Price,
			Cost:      it.Cost,
			Qty:       it.Qty,
			LineTotal: it.LineTotal,
			LineCost:  it.LineCost,
		})
	}
	return OrderResponse{
		ID:        o.ID,
		Number:    o.Number,
		Status:    o.Status,
		Items:     items,
		Subtotal:  o.Subtotal,
		TaxRate:   o.TaxRate,
		TaxAmount: o.TaxAmount,
		Total:     o.Total,
		TotalCost: o.TotalCost,
		Profit:    o.Profit,
		Payment: PaymentResponse{
			Method:     o.Payment.Method,
			PaidAmount: o.Payment.PaidAmount,
			Change:     o.Payment.Change,
		},
		Note:       o.Note,
		CreatedBy:  o.CreatedBy,
		VoidedAt:   o.VoidedAt,
		VoidedBy:   o.VoidedBy,
		VoidReason: o.VoidReason,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func FromMovement(m *entity.StockMovement) StockMovementResponse {
	out := StockMovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		ProductID: m.ProductID,
		Qty:       m.Qty,
		UnitCost:  m.UnitCost,
		Supplier:  m.Supplier,
		Note:      m.Note,
		Reference: m.Reference,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
	if m.ProductName != "" {
		out.Product = &MovementProduct{ID: m.ProductID, Name: m.ProductName, Category: m.ProductCategory}
	}
	return out
}

func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		Active:    s.Active,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromPurchaseInvoice(inv *entity.PurchaseInvoice) PurchaseInvoiceResponse {
	lines := make([]PurchaseInvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, PurchaseInvoiceLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			Qty:       l.Qty,
			UnitCost:  l.UnitCost,
			LineTotal: l.LineTotal,
		})
	}
	out := PurchaseInvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		SupplierID: inv.SupplierID,
		Status:     inv.Status,
		Lines:      lines,
		Subtotal:   inv.Subtotal,
		Note:       inv.Note,
		CostMode:   inv.CostMode,
		CreatedBy:  inv.CreatedBy,
		PostedAt:   inv.PostedAt,
		PostedBy:   inv.PostedBy,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
	if inv.Supplier != nil {
		out.Supplier = &InvoiceSupplier{
			ID:      inv.Supplier.ID,
			Name:    inv.Supplier.Name,
			Phone:   inv.Supplier.Phone,
			Email:   inv.Supplier.Email,
			Address: inv.Supplier.Address,
		}
	}
	return out
}

// FromUser nunca incluye el hash de la contraseña.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
