// Package ledger contiene las reglas puras del libro de inventario:
// validación de despachos y devoluciones y derivación del estado del movimiento.
// No accede a persistencia; los casos de uso le pasan el estado ya cargado.
package ledger

import (
	"strings"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

// Accounting define cómo se cuenta lo devuelto al recalcular el estado.
type Accounting string

const (
	// AccountingCumulative suma todas las devoluciones del movimiento (incluida la actual).
	AccountingCumulative Accounting = "cumulative"
	// AccountingPerCall compara solo las cantidades de la llamada actual.
	AccountingPerCall Accounting = "per_call"
)

// ParseAccounting interpreta el modo; vacío equivale a cumulative.
func ParseAccounting(s string) (Accounting, error) {
	switch Accounting(strings.ToLower(strings.TrimSpace(s))) {
	case "", AccountingCumulative:
		return AccountingCumulative, nil
	case AccountingPerCall:
		return AccountingPerCall, nil
	}
	return "", domain.Invalid("modo de conteo de devoluciones desconocido %q", s)
}

// ResolveStatus devuelve RETURNED si totalReturned >= totalOut, si no PARTIAL_RETURN.
func ResolveStatus(totalOut, totalReturned int) entity.MovementStatus {
	if totalReturned >= totalOut {
		return entity.MovementStatusReturned
	}
	return entity.MovementStatusPartialReturn
}

// NextStatus aplica ResolveStatus sin permitir retroceder desde RETURNED.
func NextStatus(current entity.MovementStatus, totalOut, totalReturned int) entity.MovementStatus {
	if current == entity.MovementStatusReturned {
		return current
	}
	return ResolveStatus(totalOut, totalReturned)
}

// ValidateDispatchLines exige al menos una línea, cantidades positivas y sin artículos repetidos.
func ValidateDispatchLines(lines []entity.DispatchLine) error {
	if len(lines) == 0 {
		return domain.Invalid("el despacho requiere al menos una línea")
	}
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.ItemID) == "" {
			return domain.Invalid("línea %d: itemId requerido", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		if _, dup := seen[l.ItemID]; dup {
			return domain.Invalid("el artículo %s aparece más de una vez", l.ItemID)
		}
		seen[l.ItemID] = struct{}{}
	}
	return nil
}

// CheckAvailability verifica todas las líneas contra el stock cargado antes de escribir nada.
// items debe contener cada artículo referenciado; uno ausente produce ErrNotFound.
func CheckAvailability(store entity.StoreID, items map[string]*entity.Item, lines []entity.DispatchLine) error {
	for _, l := range lines {
		it, ok := items[l.ItemID]
		if !ok || it == nil {
			return domain.ErrNotFound
		}
		if it.Store != store {
			return domain.Invalid("el artículo %s pertenece a %s, no a %s", it.Name, it.Store, store)
		}
		if l.Quantity > it.InStock {
			return &domain.InsufficientStockError{
				ItemID:    it.ID,
				ItemName:  it.Name,
				Available: it.InStock,
				Requested: l.Quantity,
			}
		}
	}
	return nil
}

// ApplyDispatch descuenta las cantidades; llamar solo después de CheckAvailability.
func ApplyDispatch(items map[string]*entity.Item, lines []entity.DispatchLine) error {
	for _, l := range lines {
		it := items[l.ItemID]
		it.InStock -= l.Quantity
		if !it.StockValid() {
			return domain.ErrInvariantViolation
		}
	}
	return nil
}

// NormalizeReturnLines descarta líneas en cero y rechaza negativas, repetidas o vacías.
func NormalizeReturnLines(lines []entity.DispatchLine) ([]entity.DispatchLine, error) {
	out := make([]entity.DispatchLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.ItemID) == "" {
			return nil, domain.Invalid("línea %d: itemId requerido", i+1)
		}
		if l.Quantity < 0 {
			return nil, domain.Invalid("línea %d: cantidad negativa", i+1)
		}
		if l.Quantity == 0 {
			continue
		}
		if _, dup := seen[l.ItemID]; dup {
			return nil, domain.Invalid("el artículo %s aparece más de una vez", l.ItemID)
		}
		seen[l.ItemID] = struct{}{}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, domain.Invalid("la devolución requiere al menos una cantidad positiva")
	}
	return out, nil
}

// ReturnedByItem suma por artículo las cantidades de los registros de devolución.
func ReturnedByItem(records []*entity.ReturnRecord) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		for _, l := range r.Lines {
			out[l.ItemID] += l.Quantity
		}
	}
	return out
}

// TotalReturned suma todas las cantidades devueltas en los registros.
func TotalReturned(records []*entity.ReturnRecord) int {
	total := 0
	for _, r := range records {
		total += entity.SumLines(r.Lines)
	}
	return total
}

// CheckReturn verifica que ningún artículo supere lo despachado sumando devoluciones previas.
func CheckReturn(mov *entity.Movement, previous []*entity.ReturnRecord, lines []entity.DispatchLine) error {
	already := ReturnedByItem(previous)
	for _, l := range lines {
		dispatched := mov.DispatchedQuantity(l.ItemID)
		if dispatched == 0 || already[l.ItemID]+l.Quantity > dispatched {
			return &domain.InvalidReturnQuantityError{
				MovementID:      mov.ID,
				ItemID:          l.ItemID,
				Dispatched:      dispatched,
				AlreadyReturned: already[l.ItemID],
				Requested:       l.Quantity,
			}
		}
	}
	return nil
}

// ApplyReturn suma lo devuelto al stock de cada artículo validando el invariante.
func ApplyReturn(items map[string]*entity.Item, lines []entity.DispatchLine) error {
	for _, l := range lines {
		it, ok := items[l.ItemID]
		if !ok || it == nil {
			return domain.ErrNotFound
		}
		it.InStock += l.Quantity
		if !it.StockValid() {
			return domain.ErrInvariantViolation
		}
	}
	return nil
}

// ReturnedForStatus calcula la cantidad a comparar contra el total despachado según el modo.
func ReturnedForStatus(mode Accounting, previous []*entity.ReturnRecord, current []entity.DispatchLine) int {
	if mode == AccountingPerCall {
		return entity.SumLines(current)
	}
	return TotalReturned(previous) + entity.SumLines(current)
}

// LineBalance estado de una línea del movimiento: despachado, devuelto y pendiente.
type LineBalance struct {
	ItemID      string
	Dispatched  int
	Returned    int
	Outstanding int
}

// Balances calcula el saldo por línea en el orden original del despacho.
func Balances(mov *entity.Movement, records []*entity.ReturnRecord) []LineBalance {
	returned := ReturnedByItem(records)
	out := make([]LineBalance, 0, len(mov.Lines))
	for _, l := range mov.Lines {
		r := returned[l.ItemID]
		out = append(out, LineBalance{
			ItemID:      l.ItemID,
			Dispatched:  l.Quantity,
			Returned:    r,
			Outstanding: l.Quantity - r,
		})
	}
	return out
}
