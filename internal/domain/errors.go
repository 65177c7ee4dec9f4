package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrMovementNotFound      = errors.New("movimiento no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidReturnQuantity = errors.New("cantidad de devolución inválida")
	ErrInvariantViolation    = errors.New("el stock disponible debe estar entre 0 y la cantidad total")
)

// InsufficientStockError se produce cuando una línea de despacho supera el stock disponible.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidReturnQuantityError se produce al devolver más de lo despachado (acumulado)
// o un artículo que no salió en el movimiento.
type InvalidReturnQuantityError struct {
	MovementID      string
	ItemID          string
	Dispatched      int
	AlreadyReturned int
	Requested       int
}

func (e *InvalidReturnQuantityError) Error() string {
	if e.Dispatched == 0 {
		return fmt.Sprintf("el artículo %s no pertenece al movimiento %s", e.ItemID, e.MovementID)
	}
	return fmt.Sprintf("devolución inválida de %s en %s: despachado %d, ya devuelto %d, solicitado %d",
		e.ItemID, e.MovementID, e.Dispatched, e.AlreadyReturned, e.Requested)
}

func (e *InvalidReturnQuantityError) Is(target error) bool {
	return target == ErrInvalidReturnQuantity
}

// Invalid envuelve ErrInvalidInput con el detalle del campo que falló.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
