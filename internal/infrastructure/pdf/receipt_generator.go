// Package pdf genera el recibo de venta del POS en PDF.
//
// Layout de la página:
//
//	┌───────────────────────────────────────────────┐
//	│  Nombre del local          │  N° orden + fecha │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total      │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL         │
//	│  PAGO: método / recibido / cambio             │
//	│  QR con el número de orden + nota             │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoid    = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ReceiptGenerator renderiza órdenes con Maroto v2.
type ReceiptGenerator struct {
	storeName string
	loc       *time.Location
	printer   *message.Printer
}

// NewReceiptGenerator construye el generador. loc define la hora impresa en el recibo.
func NewReceiptGenerator(storeName string, loc *time.Location) *ReceiptGenerator {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptGenerator{
		storeName: storeName,
		loc:       loc,
		printer:   message.NewPrinter(language.English),
	}
}

// RenderReceipt genera el PDF de la orden y devuelve sus bytes.
func (g *ReceiptGenerator) RenderReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Receipt "+order.Number, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	if order.Status == entity.OrderStatusVoid {
		m.AddRows(voidRow(order))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range order.Items {
		m.AddRows(g.itemRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(order))
	m.AddRows(g.paymentRow(order))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sales receipt", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(order.CreatedAt.In(g.loc).Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func voidRow(order *entity.Order) core.Row {
	msg := "VOID"
	if order.VoidReason != "" {
		msg += ": " + order.VoidReason
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorVoid, Top: 1}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 6, align.Left),
		h("Price", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *ReceiptGenerator) itemRow(it entity.OrderItem) core.Row {
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprint(it.Qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(it.Name, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(g.money(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(g.money(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func (g *ReceiptGenerator) totalsRow(order *entity.Order) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top})
	}
	taxLabel := "Tax (" + order.TaxRate.Mul(decimal.NewFromInt(100)).String() + "%):"
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label(taxLabel, 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 13}),
		),
		col.New(3).Add(
			value(g.money(order.Subtotal), 1),
			value(g.money(order.TaxAmount), 7),
			text.New(g.money(order.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 13}),
		),
	)
}

func (g *ReceiptGenerator) paymentRow(order *entity.Order) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(g.printer.Sprintf("Payment: %s   |   Paid: %s   |   Change: %s",
			order.Payment.Method, g.money(order.Payment.PaidAmount), g.money(order.Payment.Change)),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func footerRow(order *entity.Order) core.Row {
	note := "Thank you!"
	if order.Note != "" {
		note = order.Note
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(order.Number, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(text.New(note, props.Text{Size: 9, Top: 10, Left: 3, Color: colorGray})),
	)
}

// money formatea con separador de miles y 2 decimales (1,234.50).
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return FormatMoney(g.printer, d)
}

// FormatMoney usa el printer de x/text para agrupar miles.
func FormatMoney(p *message.Printer, d decimal.Decimal) string {
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
