package entity

import "time"

// MovementStatus ciclo de vida de un despacho.
type MovementStatus string

// Estados del movimiento. Solo avanzan: OUT -> PARTIAL_RETURN -> RETURNED.
const (
	MovementStatusOut           MovementStatus = "OUT"
	MovementStatusPartialReturn MovementStatus = "PARTIAL_RETURN"
	MovementStatusReturned      MovementStatus = "RETURNED"
)

// Valid informa si s es un estado conocido.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementStatusOut, MovementStatusPartialReturn, MovementStatusReturned:
		return true
	}
	return false
}

// DispatchLine artículo y cantidad de un despacho o devolución.
type DispatchLine struct {
	ItemID   string
	Quantity int
}

// SumLines suma las cantidades de las líneas.
func SumLines(lines []DispatchLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// CloneLines copia un slice de líneas.
func CloneLines(lines []DispatchLine) []DispatchLine {
	if lines == nil {
		return nil
	}
	return append([]DispatchLine(nil), lines...)
}

// Movement registro de un despacho desde una bodega hacia un cliente/evento.
// Lines se fija al crear y no cambia; Status se recalcula con cada devolución.
type Movement struct {
	ID                 string
	CreatedAt          time.Time
	Store              StoreID
	Lines              []DispatchLine
	AuthorizedByUserID string
	IssuedByUserID     string
	CustomerName       string
	ResponsiblePerson  string
	UseLocation        string
	ExpectedReturnAt   time.Time
	Status             MovementStatus
}

// TotalOut cantidad total despachada.
func (m *Movement) TotalOut() int {
	return SumLines(m.Lines)
}

// DispatchedQuantity cantidad despachada de un artículo (0 si no está en el movimiento).
func (m *Movement) DispatchedQuantity(itemID string) int {
	total := 0
	for _, l := range m.Lines {
		if l.ItemID == itemID {
			total += l.Quantity
		}
	}
	return total
}

// Overdue informa si el despacho sigue fuera después de la fecha esperada.
func (m *Movement) Overdue(now time.Time) bool {
	return m.Status == MovementStatusOut && now.After(m.ExpectedReturnAt)
}

// Active informa si quedan artículos por devolver.
func (m *Movement) Active() bool {
	return m.Status != MovementStatusReturned
}

// ReturnRecord evento de devolución contra un movimiento. Inmutable.
type ReturnRecord struct {
	ID               string
	MovementID       string
	ReturnedAt       time.Time
	Lines            []DispatchLine
	ReceivedByUserID string
}
