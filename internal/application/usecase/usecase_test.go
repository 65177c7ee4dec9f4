package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func TestUserUseCase_CrearYActualizar(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Asha M.", Email: "Asha@Wegesa.co", Password: "supersecreta", Role: "super_admin"})
	require.NoError(t, err)
	assert.Equal(t, "asha@wegesa.co", u.Email)
	assert.Equal(t, "SUPER_ADMIN", u.Role)
	assert.True(t, u.IsActive)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecreta")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Otra", Email: "asha@wegesa.co", Password: "supersecreta", Role: "OPERATION"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Corta", Email: "c@wegesa.co", Password: "123", Role: "OPERATION"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Rol", Email: "r@wegesa.co", Password: "supersecreta", Role: "CEO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: ptr("OPERATION"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "OPERATION", updated.Role)
	assert.False(t, updated.IsActive)

	inactive, err := uc.List(ctx, dto.UserListQuery{Active: "false"})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	_, err = uc.List(ctx, dto.UserListQuery{Active: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, "otro", u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestInvoiceUseCase_NumeracionYTotales(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInvoiceUseCase(memory.NewStore().Invoices())
	year := time.Now().UTC().Year()
	due := time.Now().UTC().Add(14 * 24 * time.Hour)

	req := dto.CreateInvoiceRequest{
		CustomerName: "Serena Hotel",
		Items: []dto.InvoiceItemDTO{
			{Description: "Plastic chairs", Quantity: decimal.NewFromInt(200), UnitPrice: decimal.NewFromInt(500)},
			{Description: "Tent 10x20", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250000)},
		},
		DueDate: due,
	}

	first, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WGS-%d-001", year), first.InvoiceNumber)
	assert.Equal(t, "DRAFT", first.Status)
	assert.True(t, decimal.NewFromInt(350000).Equal(first.Subtotal))
	assert.True(t, decimal.NewFromInt(18).Equal(first.TaxRate))
	assert.True(t, decimal.NewFromInt(63000).Equal(first.TaxAmount))
	assert.True(t, decimal.NewFromInt(413000).Equal(first.Total))

	second, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WGS-%d-002", year), second.InvoiceNumber)

	zero := decimal.Zero
	updated, err := uc.Update(ctx, first.ID, dto.UpdateInvoiceRequest{TaxRate: &zero, Status: ptr("paid")})
	require.NoError(t, err)
	assert.Equal(t, "PAID", updated.Status)
	assert.True(t, decimal.NewFromInt(350000).Equal(updated.Total))
	assert.Equal(t, first.InvoiceNumber, updated.InvoiceNumber)

	paid, err := uc.List(ctx, dto.InvoiceListQuery{Status: "PAID"})
	require.NoError(t, err)
	assert.Len(t, paid, 1)
}

func TestInvoiceUseCase_NumeracionTrasEliminar(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInvoiceUseCase(memory.NewStore().Invoices())
	year := time.Now().UTC().Year()
	req := dto.CreateInvoiceRequest{
		CustomerName: "Serena Hotel",
		Items:        []dto.InvoiceItemDTO{{Description: "Chairs", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(500)}},
		DueDate:      time.Now().UTC().Add(7 * 24 * time.Hour),
	}

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		inv, err := uc.Create(ctx, req)
		require.NoError(t, err)
		ids = append(ids, inv.ID)
	}
	require.NoError(t, uc.Delete(ctx, ids[0]))

	next, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WGS-%d-004", year), next.InvoiceNumber)

	again, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WGS-%d-005", year), again.InvoiceNumber)
}

func TestInvoiceUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInvoiceUseCase(memory.NewStore().Invoices())
	due := time.Now().UTC().Add(24 * time.Hour)
	line := dto.InvoiceItemDTO{Description: "Chairs", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}

	_, err := uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "X", DueDate: due})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{Items: []dto.InvoiceItemDTO{line}, DueDate: due})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "X", Items: []dto.InvoiceItemDTO{line}, DueDate: due, Status: "UNKNOWN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "X", CustomerEmail: "no-es-email", Items: []dto.InvoiceItemDTO{line}, DueDate: due})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewTransactionUseCase(memory.NewStore().Transactions())

	_, err := uc.Create(ctx, dto.CreateTransactionRequest{Type: "INCOME", Description: "Pago", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tx, err := uc.Create(ctx, dto.CreateTransactionRequest{Type: "expense", Description: "Diesel generador", Amount: decimal.NewFromInt(85000), Category: "Fuel"})
	require.NoError(t, err)
	assert.Equal(t, "EXPENSE", tx.Type)

	_, err = uc.Update(ctx, tx.ID, dto.UpdateTransactionRequest{Type: ptr("GIFT")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	found, err := uc.List(ctx, dto.TransactionListQuery{Search: "fuel"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, uc.Delete(ctx, tx.ID))
	assert.ErrorIs(t, uc.Delete(ctx, tx.ID), domain.ErrNotFound)
}

func TestBookingUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBookingUseCase(memory.NewStore().Bookings())

	b, err := uc.Create(ctx, dto.CreateBookingRequest{
		CustomerName: "Grace & Peter",
		EventDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		EventType:    "wedding",
		Venue:        "Golden Tulip",
		Amount:       decimal.NewFromInt(2500000),
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", b.Status)
	assert.Equal(t, "WEDDING", b.EventType)

	_, err = uc.Create(ctx, dto.CreateBookingRequest{CustomerName: "X", EventDate: time.Now(), EventType: "PARTY", Venue: "Y"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, b.ID, dto.UpdateBookingRequest{Status: ptr("CONFIRMED"), IsPaid: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", updated.Status)
	assert.True(t, updated.IsPaid)

	weddings, err := uc.List(ctx, dto.BookingListQuery{EventType: "WEDDING"})
	require.NoError(t, err)
	assert.Len(t, weddings, 1)
}

func TestEmployeeUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmployeeUseCase(memory.NewStore().Employees())
	req := dto.CreateEmployeeRequest{
		FullName:          "Sarah Komba",
		DateOfBirth:       time.Date(1992, 8, 22, 0, 0, 0, 0, time.UTC),
		Gender:            "female",
		Position:          "Store Manager",
		MobileContact:     "+255 713 456 789",
		ContractStartDate: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		ContractEndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	e, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "FEMALE", e.Gender)

	bad := req
	bad.ContractEndDate = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, e.ID, dto.UpdateEmployeeRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	list, err := uc.List(ctx, dto.EmployeeListQuery{Active: "true"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
