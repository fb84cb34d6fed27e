package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo implementación sobre PostgreSQL (purchase_invoices + purchase_invoice_lines).
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// Columnas de la factura más las del proveedor (LEFT JOIN: el proveedor pudo borrarse).
const invoiceSelect = `
	SELECT i.id, i.number, i.supplier_id, i.status, i.subtotal, i.note, i.cost_mode, i.created_by,
		i.posted_at, i.posted_by, i.created_at, i.updated_at,
		s.id, s.name, s.phone, s.email, s.address, s.active, s.note
	FROM purchase_invoices i LEFT JOIN suppliers s ON s.id = i.supplier_id`

func scanInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	var sID, sName, sPhone, sEmail, sAddress, sNote *string
	var sActive *bool
	err := row.Scan(&inv.ID, &inv.Number, &inv.SupplierID, &inv.Status, &inv.Subtotal, &inv.Note, &inv.CostMode,
		&inv.CreatedBy, &inv.PostedAt, &inv.PostedBy, &inv.CreatedAt, &inv.UpdatedAt,
		&sID, &sName, &sPhone, &sEmail, &sAddress, &sActive, &sNote)
	if err != nil {
		return nil, err
	}
	if sID != nil {
		inv.Supplier = &entity.Supplier{
			ID: *sID, Name: deref(sName), Phone: deref(sPhone), Email: deref(sEmail),
			Address: deref(sAddress), Note: deref(sNote), Active: sActive != nil && *sActive,
		}
	}
	return &inv, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserta cabecera y líneas.
func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_invoices (id, number, supplier_id, status, subtotal, note, cost_mode, created_by,
			posted_at, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.Number, inv.SupplierID, inv.Status, inv.Subtotal, inv.Note, inv.CostMode, inv.CreatedBy,
		inv.PostedAt, inv.PostedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("invoice number %s already exists", inv.Number)
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	batch := &pgx.Batch{}
	for i, l := range inv.Lines {
		batch.Queue(`
			INSERT INTO purchase_invoice_lines (invoice_id, line_no, product_id, name, category, qty, unit_cost, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			inv.ID, i+1, l.ProductID, l.Name, l.Category, l.Qty, l.UnitCost, l.LineTotal)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range inv.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert purchase invoice line: %w", err)
		}
	}
	return nil
}

func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.getOne(ctx, invoiceSelect+` WHERE i.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de la factura.
func (r *PurchaseInvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.getOne(ctx, invoiceSelect+` WHERE i.id = $1 FOR UPDATE OF i`, id)
}

func (r *PurchaseInvoiceRepo) getOne(ctx context.Context, query, id string) (*entity.PurchaseInvoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.PurchaseInvoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PurchaseInvoiceRepo) loadLines(ctx context.Context, invoices []*entity.PurchaseInvoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	byID := make(map[string]*entity.PurchaseInvoice, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
		byID[inv.ID] = inv
		inv.Lines = []entity.PurchaseInvoiceLine{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT invoice_id, product_id, name, category, qty, unit_cost, line_total
		FROM purchase_invoice_lines WHERE invoice_id = ANY($1) ORDER BY invoice_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list purchase invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invoiceID string
		var l entity.PurchaseInvoiceLine
		if err := rows.Scan(&invoiceID, &l.ProductID, &l.Name, &l.Category, &l.Qty, &l.UnitCost, &l.LineTotal); err != nil {
			return fmt.Errorf("scan purchase invoice line: %w", err)
		}
		if inv, ok := byID[invoiceID]; ok {
			inv.Lines = append(inv.Lines, l)
		}
	}
	return rows.Err()
}

// UpdateStatus persiste estado, modo de costo y datos de contabilización.
func (r *PurchaseInvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.PurchaseInvoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_invoices SET status = $2, cost_mode = $3, posted_at = $4, posted_by = $5, updated_at = $6
		WHERE id = $1`,
		inv.ID, inv.Status, inv.CostMode, inv.PostedAt, inv.PostedBy, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List facturas más recientes primero, con proveedor y líneas.
func (r *PurchaseInvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseInvoice, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_invoices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase invoices: %w", err)
	}
	w := &whereBuilder{}
	page, args := w.limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, invoiceSelect+` ORDER BY i.created_at DESC, i.id DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase invoices: %w", err)
	}
	list := []*entity.PurchaseInvoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan purchase invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
