// Package xlsx implementa export.SheetWriter con excelize (stream writer).
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/wegesa-api/internal/application/export"
)

const (
	defaultSheet = "Sheet1"
	colWidth     = 18
	dateFormat   = "yyyy-mm-dd"
	moneyFormat  = "#,##0.00"
)

var _ export.SheetWriter = (*Writer)(nil)

// Writer genera un libro de una sola hoja con encabezado en negrita.
type Writer struct{}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Write(ctx context.Context, sheet export.Sheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = defaultSheet
	}
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	dateFmt := dateFormat
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo fecha: %w", err)
	}
	moneyFmt := moneyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return nil, fmt.Errorf("xlsx: stream writer: %w", err)
	}
	if n := len(sheet.Headers); n > 0 {
		if err := sw.SetColWidth(1, n, colWidth); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
		}
	}

	head := make([]interface{}, 0, len(sheet.Headers))
	for _, h := range sheet.Headers {
		head = append(head, excelize.Cell{StyleID: header, Value: h})
	}
	if err := sw.SetRow("A1", head); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	for i, r := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, 0, len(r))
		for _, v := range r {
			values = append(values, cellValue(v, date, money))
		}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("xlsx: flush: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue fechas y montos llevan formato; fecha cero queda vacía.
func cellValue(v any, date, money int) interface{} {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return excelize.Cell{StyleID: date, Value: x}
	case decimal.Decimal:
		return excelize.Cell{StyleID: money, Value: x.InexactFloat64()}
	default:
		return v
	}
}
