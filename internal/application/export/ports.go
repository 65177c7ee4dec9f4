package export

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

// Sheet hoja tabular genérica; Rows contiene string, int, time.Time, bool o decimal.Decimal.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// SheetWriter serializa una hoja a un libro de cálculo.
type SheetWriter interface {
	Write(ctx context.Context, sheet Sheet) ([]byte, error)
}

// NoteLine línea de la nota de despacho con saldos.
type NoteLine struct {
	ItemID      string
	ItemName    string
	Dispatched  int
	Returned    int
	Outstanding int
}

// DispatchNote datos de la nota de despacho impresa.
type DispatchNote struct {
	Movement     *entity.Movement
	Lines        []NoteLine
	AuthorizedBy string // nombre del usuario o su id si ya no existe
	IssuedBy     string
	Returns      int // cantidad de registros de devolución
}

// DocumentRenderer genera los PDF.
type DocumentRenderer interface {
	DispatchNotePDF(ctx context.Context, note *DispatchNote) ([]byte, error)
	InvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}
