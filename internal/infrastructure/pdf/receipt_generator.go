// Package pdf genera el recibo de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT        │  N° Recibo + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + NIT + contacto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción | P.Unit | Desc% | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL            │
//	│  PAGO: estado + método                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const defaultCompanyName = "Inventory System"

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	money *message.Printer
}

// NewReceiptGenerator construye el generador. lang define el formato de montos (ej: "es", "en").
func NewReceiptGenerator(lang string) *ReceiptGenerator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Spanish
	}
	return &ReceiptGenerator{money: message.NewPrinter(tag)}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(
	_ context.Context,
	sale *entity.Sale,
	lines []sales.ReceiptLine,
	customer *entity.Customer,
	company *entity.CompanySettings,
) ([]byte, error) {
	if company == nil {
		company = &entity.CompanySettings{}
	}
	name := nonEmpty(company.CompanyName, defaultCompanyName)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+sale.InvoiceNumber, true).
		WithAuthor(name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, name, company.TaxNumber))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.itemRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(paymentRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sale *entity.Sale, companyName, taxNumber string) core.Row {
	left := []core.Component{
		text.New(companyName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
	}
	if taxNumber != "" {
		left = append(left, text.New("NIT: "+taxNumber, props.Text{Size: 9, Top: 9, Color: colorGray}))
	}
	return row.New(18).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.SaleDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func companyRow(company *entity.CompanySettings) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// customerRow: sin cliente la venta es de mostrador.
func customerRow(customer *entity.Customer) core.Row {
	if customer == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Walk-in", props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxNumber, "-"),
				nonEmpty(customer.Email, "-"),
				nonEmpty(customer.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc.%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

func (g *ReceiptGenerator) itemRows(lines []sales.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
	}
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(cell(fmt.Sprintf("%d", l.Quantity), align.Center)),
			col.New(2).Add(cell(l.SKU, align.Left)),
			col.New(4).Add(cell(l.ProductName, align.Left)),
			col.New(2).Add(cell(g.formatMoney(l.UnitPrice), align.Right)),
			col.New(1).Add(cell(l.DiscountPercentage.StringFixed(0)+"%", align.Center)),
			col.New(2).Add(cell(g.formatMoney(l.LineTotal), align.Right)),
		))
	}
	return result
}

func (g *ReceiptGenerator) totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 15, Right: 1}
	labels := []core.Component{
		label("Subtotal:"),
		text.New("Descuento:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 5, Right: 2}),
		text.New("Impuesto:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 10, Right: 2}),
		text.New("TOTAL:", grand),
	}
	values := []core.Component{
		value(g.formatMoney(sale.Subtotal)),
		text.New("-"+g.formatMoney(sale.DiscountAmount), props.Text{Size: 9, Align: align.Right, Top: 5, Right: 1}),
		text.New(g.formatMoney(sale.TaxAmount), props.Text{Size: 9, Align: align.Right, Top: 10, Right: 1}),
		text.New(g.formatMoney(sale.TotalAmount), grand),
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

func paymentRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Estado de pago: %s   |   Método: %s",
			sale.PaymentStatus, nonEmpty(sale.PaymentMethod, "-"),
		), props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles y 2 decimales según el idioma del generador.
// Ej (es): 1234567.5 → "$1.234.567,50"
func (g *ReceiptGenerator) formatMoney(d decimal.Decimal) string {
	return g.money.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}
