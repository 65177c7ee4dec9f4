package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType ingreso o egreso.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Valid informa si t es un tipo conocido.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction movimiento de caja (no confundir con Movement de inventario).
type Transaction struct {
	ID          string
	Type        TransactionType
	Description string
	Amount      decimal.Decimal
	Category    string
	Reference   string
	Date        time.Time
	CreatedAt   time.Time
}
