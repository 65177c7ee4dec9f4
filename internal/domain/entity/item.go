package entity

import "time"

// StoreID identifica una de las bodegas físicas de la empresa.
type StoreID string

// Bodegas válidas (conjunto fijo).
const (
	StoreBoba      StoreID = "BOBA"
	StoreMikocheni StoreID = "MIKOCHENI"
)

// Stores devuelve todas las bodegas en orden estable.
func Stores() []StoreID {
	return []StoreID{StoreBoba, StoreMikocheni}
}

// Valid informa si s es una bodega conocida.
func (s StoreID) Valid() bool {
	return s == StoreBoba || s == StoreMikocheni
}

// DisplayName nombre legible de la bodega.
func (s StoreID) DisplayName() string {
	switch s {
	case StoreBoba:
		return "Boba"
	case StoreMikocheni:
		return "Mikocheni"
	default:
		return string(s)
	}
}

// Item representa un artículo de alquiler en una bodega.
// Quantity es el total en propiedad; InStock lo disponible (no despachado).
type Item struct {
	ID          string
	Name        string
	Brand       string
	Type        string
	Quantity    int
	InStock     int
	Store       StoreID
	DateOfEntry time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValid verifica el invariante 0 <= InStock <= Quantity.
func (i *Item) StockValid() bool {
	return i.InStock >= 0 && i.InStock <= i.Quantity
}

// Out unidades fuera de bodega.
func (i *Item) Out() int {
	return i.Quantity - i.InStock
}
