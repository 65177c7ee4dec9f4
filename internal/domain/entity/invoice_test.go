package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

func TestInvoice_Recalculate(t *testing.T) {
	inv := &entity.Invoice{
		TaxRate: entity.DefaultTaxRate,
		Items: []entity.InvoiceItem{
			{Description: "Chairs", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(500)},
			{Description: "Tent", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(150000), Total: decimal.NewFromInt(1)},
		},
	}

	inv.Recalculate()

	assert.True(t, decimal.NewFromInt(50000).Equal(inv.Items[0].Total))
	assert.True(t, decimal.NewFromInt(150000).Equal(inv.Items[1].Total), "el total de línea enviado se ignora")
	assert.True(t, decimal.NewFromInt(200000).Equal(inv.Subtotal))
	assert.True(t, decimal.NewFromInt(36000).Equal(inv.TaxAmount))
	assert.True(t, decimal.NewFromInt(236000).Equal(inv.Total))
}

func TestMovement_Cantidades(t *testing.T) {
	m := &entity.Movement{Lines: []entity.DispatchLine{{ItemID: "a", Quantity: 3}, {ItemID: "b", Quantity: 7}}}
	assert.Equal(t, 10, m.TotalOut())
	assert.Equal(t, 7, m.DispatchedQuantity("b"))
	assert.Equal(t, 0, m.DispatchedQuantity("z"))
}

func TestItem_StockValid(t *testing.T) {
	assert.True(t, (&entity.Item{Quantity: 10, InStock: 10}).StockValid())
	assert.True(t, (&entity.Item{Quantity: 10, InStock: 0}).StockValid())
	assert.False(t, (&entity.Item{Quantity: 10, InStock: 11}).StockValid())
	assert.False(t, (&entity.Item{Quantity: 10, InStock: -1}).StockValid())
}
