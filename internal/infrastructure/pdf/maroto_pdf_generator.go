// Package pdf genera los documentos impresos con Maroto v2.
//
// Nota de despacho (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Wegesa + bodega     │  N° despacho + fecha + estado │
//	│  CLIENTE: nombre, responsable, lugar, retorno esperado      │
//	│  TABLA: Artículo | Despachado | Devuelto | Pendiente         │
//	│  FIRMAS: autorizado por / emitido por + QR del movimiento    │
//	└─────────────────────────────────────────────────────────────┘
//
// La factura usa el mismo encabezado y una tabla Cant | Descripción | P.Unit | Total.
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

const (
	companyName = "WEGESA EVENTS & RENTALS"
	currency    = "TZS"
	dateLayout  = "02 Jan 2006"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ export.DocumentRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa export.DocumentRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(companyName, true).
		Build()
	return maroto.New(cfg)
}

// DispatchNotePDF nota de despacho con saldos por línea.
func (g *MarotoPDFGenerator) DispatchNotePDF(ctx context.Context, note *export.DispatchNote) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mov := note.Movement
	m := newDocument("Dispatch Note")

	m.AddRows(headerRow(
		mov.Store.DisplayName()+" store",
		"DISPATCH NOTE",
		strings.ToUpper(shortID(mov.ID)),
		"Date: "+mov.CreatedAt.Format(dateLayout)+"   |   Status: "+string(mov.Status),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow([]headerCol{
		{"Item", 6, align.Left},
		{"Dispatched", 2, align.Center},
		{"Returned", 2, align.Center},
		{"Outstanding", 2, align.Center},
	}))
	for _, r := range noteRows(note.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(noteTotalsRow(note))

	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow(note))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// InvoicePDF documento de la factura con totales.
func (g *MarotoPDFGenerator) InvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := newDocument("Invoice " + inv.InvoiceNumber)

	m.AddRows(headerRow(
		"Dar es Salaam, Tanzania",
		"INVOICE",
		inv.InvoiceNumber,
		"Issued: "+inv.IssueDate.Format(dateLayout)+"   |   Due: "+inv.DueDate.Format(dateLayout),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow([]headerCol{
		{"Qty", 1, align.Center},
		{"Description", 6, align.Left},
		{"Unit Price", 2, align.Right},
		{"Total", 3, align.Right},
	}))
	for _, r := range invoiceRows(inv.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(inv))

	if inv.Notes != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Notes: "+inv.Notes, props.Text{Size: 8, Top: 3, Color: colorGray}),
		)))
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Status: "+string(inv.Status), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + subtítulo (izq) y documento + número + fecha (der).
func headerRow(subtitle, docType, number, dateLine string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docType, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(dateLine, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(mov *entity.Movement) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(mov.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Responsible: %s   |   Location: %s",
				nonEmpty(mov.ResponsiblePerson, "-"),
				nonEmpty(mov.UseLocation, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("Expected return: "+mov.ExpectedReturnAt.Format(dateLayout),
				props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func billToRow(inv *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   %s",
				nonEmpty(inv.CustomerEmail, "-"),
				nonEmpty(inv.CustomerPhone, "-"),
				nonEmpty(inv.CustomerAddress, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla en blanco sobre el color primario.
func tableHeaderRow(cols []headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(out...)
}

func noteRows(lines []export.NoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(n int) core.Component {
		return text.New(fmt.Sprint(n), props.Text{Size: 8, Align: align.Center, Top: 1})
	}
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(l.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(cell(l.Dispatched)),
			col.New(2).Add(cell(l.Returned)),
			col.New(2).Add(cell(l.Outstanding)),
		))
	}
	return result
}

func noteTotalsRow(note *export.DispatchNote) core.Row {
	var out, returned, pending int
	for _, l := range note.Lines {
		out += l.Dispatched
		returned += l.Returned
		pending += l.Outstanding
	}
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Left: 1})
	}
	return row.New(8).Add(
		col.New(6).Add(bold(fmt.Sprintf("TOTAL (%d return records)", note.Returns), align.Left)),
		col.New(2).Add(bold(fmt.Sprint(out), align.Center)),
		col.New(2).Add(bold(fmt.Sprint(returned), align.Center)),
		col.New(2).Add(bold(fmt.Sprint(pending), align.Center)),
	)
}

// signatureRow: firmas y QR con el id del movimiento para ubicarlo al devolver.
func signatureRow(note *export.DispatchNote) core.Row {
	sign := func(title, name string) core.Col {
		return col.New(4).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(name, props.Text{Size: 9, Top: 8}),
			text.New("Signature: ____________________", props.Text{Size: 8, Top: 20, Color: colorGray}),
		)
	}
	return row.New(40).Add(
		sign("AUTHORIZED BY", note.AuthorizedBy),
		sign("ISSUED BY", note.IssuedBy),
		col.New(4).Add(code.NewQr(note.Movement.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func invoiceRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// invoiceTotalsRow: bloque de totales alineado a la derecha.
func invoiceTotalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(5),
		col.New(3).Add(
			label("Subtotal:"),
			label("VAT "+inv.TaxRate.String()+"%:"),
			label("TOTAL:"),
		),
		col.New(4).Add(
			value(formatMoney(inv.Subtotal)),
			value(formatMoney(inv.TaxAmount)),
			grand(formatMoney(inv.Total)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney redondea a entero e inserta comas de miles.
// Ej: 25000 → "TZS 25,000", -1500 → "TZS -1,500"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return currency + " " + sign + string(buf)
}
