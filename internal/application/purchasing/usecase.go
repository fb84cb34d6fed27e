package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/domain/sequence"
)

var errInvoiceNotFound = domain.NotFound("Invoice not found")

// PurchaseInvoiceUseCase facturas de proveedor: borrador, consulta y contabilización.
type PurchaseInvoiceUseCase struct {
	txRunner repository.TxRunner
	invoices repository.PurchaseInvoiceRepository
	loc      *time.Location
	now      func() time.Time
}

// Option configura el caso de uso.
type Option func(*PurchaseInvoiceUseCase)

// WithLocation zona horaria del día de numeración.
func WithLocation(loc *time.Location) Option {
	return func(uc *PurchaseInvoiceUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *PurchaseInvoiceUseCase) { uc.now = now }
}

// NewPurchaseInvoiceUseCase construye el caso de uso.
func NewPurchaseInvoiceUseCase(txRunner repository.TxRunner, invoices repository.PurchaseInvoiceRepository, opts ...Option) *PurchaseInvoiceUseCase {
	uc := &PurchaseInvoiceUseCase{txRunner: txRunner, invoices: invoices, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create registra una factura en borrador con snapshot de nombre/categoría por línea
// y número PINV-YYYYMMDD-NNNN. No toca stock ni costos.
func (uc *PurchaseInvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	supplierID := strings.TrimSpace(in.SupplierID)
	if supplierID == "" {
		return nil, domain.Invalid("supplierId is required")
	}

	var inv *entity.PurchaseInvoice
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		supplier, err := r.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NotFound("Supplier not found")
		}
		if len(in.Lines) == 0 {
			return domain.Invalid("lines are required")
		}

		ids := make([]string, 0, len(in.Lines))
		for _, l := range in.Lines {
			ids = append(ids, strings.TrimSpace(l.ProductID))
		}
		products, err := r.Products.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("factura de compra: cargar productos: %w", err)
		}
		byID := make(map[string]*entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		lines := make([]entity.PurchaseInvoiceLine, 0, len(in.Lines))
		subtotal := decimal.Zero
		for _, l := range in.Lines {
			p := byID[strings.TrimSpace(l.ProductID)]
			if p == nil {
				return domain.Invalid("Some products not found")
			}
			if l.Qty < 1 {
				return domain.Invalid("qty must be >= 1")
			}
			if l.UnitCost == nil || l.UnitCost.IsNegative() {
				return domain.Invalid("unitCost must be >= 0")
			}
			line := entity.PurchaseInvoiceLine{
				ProductID: p.ID,
				Name:      p.Name,
				Category:  p.Category,
				Qty:       l.Qty,
				UnitCost:  pos.Round2(*l.UnitCost),
				LineTotal: pos.Round2(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Qty)))),
			}
			subtotal = subtotal.Add(line.LineTotal)
			lines = append(lines, line)
		}

		now := uc.now()
		key := sequence.DayKey(sequence.PrefixPurchaseInvoice, now, uc.loc)
		seq, err := r.Sequences.Next(ctx, key)
		if err != nil {
			return fmt.Errorf("factura de compra: numerar: %w", err)
		}
		inv = &entity.PurchaseInvoice{
			ID:         uuid.New().String(),
			Number:     sequence.Format(key, seq),
			SupplierID: supplier.ID,
			Status:     entity.InvoiceStatusDraft,
			Lines:      lines,
			Subtotal:   pos.Round2(subtotal),
			Note:       strings.TrimSpace(in.Note),
			CreatedBy:  userID,
			CreatedAt:  now.UTC(),
			UpdatedAt:  now.UTC(),
			Supplier:   supplier,
		}
		return r.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromPurchaseInvoice(inv)
	return &out, nil
}

// GetByID factura con datos del proveedor.
func (uc *PurchaseInvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errInvoiceNotFound
	}
	out := dto.FromPurchaseInvoice(inv)
	return &out, nil
}

// List facturas más recientes primero (limit por defecto 50, máximo 100).
func (uc *PurchaseInvoiceUseCase) List(ctx context.Context, q dto.PageQuery) (*dto.PageResponse[dto.PurchaseInvoiceResponse], error) {
	page := q.Normalize(50, 100)
	list, total, err := uc.invoices.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseInvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, dto.FromPurchaseInvoice(inv))
	}
	res := dto.NewPage(items, page, total)
	return &res, nil
}

// Post contabiliza una factura en borrador en una sola transacción: por cada línea suma stock,
// actualiza el costo según costMode y registra un movimiento "in" con referencia al número.
// Cualquier fallo revierte todo.
func (uc *PurchaseInvoiceUseCase) Post(ctx context.Context, userID, id string, in dto.PostPurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	mode := strings.TrimSpace(in.CostMode)
	if mode == "" {
		mode = entity.CostModeLast
	}
	if !inventory.ValidCostMode(mode) {
		return nil, domain.Invalid("costMode must be last or weighted")
	}

	var inv *entity.PurchaseInvoice
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		inv, err = r.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return errInvoiceNotFound
		}
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.Conflict("Invoice is %s, cannot post", inv.Status)
		}
		now := uc.now().UTC()
		note := fmt.Sprintf("Purchase invoice %s", inv.Number)

		for _, line := range inv.Lines {
			p, err := r.Products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.Invalid("Product missing during post")
			}
			inventory.ApplyEntry(p, line.Qty, line.UnitCost, mode)
			p.UpdatedAt = now
			if err := r.Products.Update(ctx, p); err != nil {
				return fmt.Errorf("contabilizar: actualizar producto %s: %w", p.ID, err)
			}
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				Type:      entity.MovementTypeIn,
				ProductID: p.ID,
				Qty:       line.Qty,
				UnitCost:  pos.Round2(line.UnitCost),
				Note:      note,
				Reference: inv.Number,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := r.Movements.Create(ctx, mov); err != nil {
				return fmt.Errorf("contabilizar: registrar movimiento: %w", err)
			}
		}

		inv.Status = entity.InvoiceStatusPosted
		inv.CostMode = mode
		inv.PostedAt = &now
		inv.PostedBy = userID
		inv.UpdatedAt = now
		return r.Invoices.UpdateStatus(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromPurchaseInvoice(inv)
	return &out, nil
}
