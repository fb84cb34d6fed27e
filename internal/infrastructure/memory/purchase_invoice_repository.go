package memory

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// PurchaseInvoiceRepo implementación en memoria; las lecturas incluyen el proveedor si existe.
type PurchaseInvoiceRepo struct{ a access }

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	return r.a.write(func(st *state) error {
		for _, rw := range st.invoices {
			if rw.val.Number == inv.Number {
				return domain.Duplicate("invoice number %s already exists", inv.Number)
			}
		}
		st.invoices[inv.ID] = row[entity.PurchaseInvoice]{seq: st.seq(), val: copyInvoice(*inv)}
		return nil
	})
}

func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	var out *entity.PurchaseInvoice
	err := r.a.read(func(st *state) error {
		if rw, ok := st.invoices[id]; ok {
			inv := withSupplier(st, rw.val)
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *PurchaseInvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseInvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.PurchaseInvoice) error {
	return r.a.write(func(st *state) error {
		rw, ok := st.invoices[inv.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val.Status = inv.Status
		rw.val.CostMode = inv.CostMode
		rw.val.PostedBy = inv.PostedBy
		rw.val.UpdatedAt = inv.UpdatedAt
		rw.val.PostedAt = nil
		if inv.PostedAt != nil {
			t := *inv.PostedAt
			rw.val.PostedAt = &t
		}
		st.invoices[inv.ID] = rw
		return nil
	})
}

func (r *PurchaseInvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseInvoice, int, error) {
	var rows []row[entity.PurchaseInvoice]
	var out []*entity.PurchaseInvoice
	total := 0
	err := r.a.read(func(st *state) error {
		for _, rw := range st.invoices {
			rows = append(rows, rw)
		}
		newestFirst(rows, func(inv entity.PurchaseInvoice) int64 { return inv.CreatedAt.UnixNano() })
		total = len(rows)
		out = make([]*entity.PurchaseInvoice, 0, len(rows))
		for _, rw := range page(rows, limit, offset) {
			inv := withSupplier(st, rw.val)
			out = append(out, &inv)
		}
		return nil
	})
	return out, total, err
}

func withSupplier(st *state, inv entity.PurchaseInvoice) entity.PurchaseInvoice {
	inv = copyInvoice(inv)
	if s, ok := st.suppliers[inv.SupplierID]; ok {
		sup := s.val
		inv.Supplier = &sup
	}
	return inv
}
