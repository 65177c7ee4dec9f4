package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
)

func TestStore_RunConfirmaSoloSinError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: "a", Name: "Chairs", Quantity: 10, InStock: 10, Store: entity.StoreBoba}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository, _ repository.ReturnRepository) error {
		it, err := items.GetForUpdate(ctx, "a")
		require.NoError(t, err)
		it.InStock = 0
		require.NoError(t, items.Update(ctx, it))
		require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := s.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, it.InStock, "rollback: el stock no cambia")
	m, err := s.Movements().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)

	err = s.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.ReturnRepository) error {
		it, _ := items.GetForUpdate(ctx, "a")
		it.InStock = 4
		return items.Update(ctx, it)
	})
	require.NoError(t, err)
	it, _ = s.Items().GetByID(ctx, "a")
	assert.Equal(t, 4, it.InStock)
}

func TestStore_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := memory.NewStore()
	err := s.Run(ctx, func(repository.ItemRepository, repository.MovementRepository, repository.ReturnRepository) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	lines := []entity.DispatchLine{{ItemID: "a", Quantity: 1}}
	require.NoError(t, s.Movements().Create(ctx, &entity.Movement{ID: "m1", Lines: lines}))
	lines[0].Quantity = 99

	m, err := s.Movements().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Lines[0].Quantity)
}

func TestItemRepo_ListFiltros(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.Items()
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "1", Name: "Plastic Chairs", Type: "Seating", Store: entity.StoreBoba}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "2", Name: "Banquet Tables", Type: "Tables", Store: entity.StoreMikocheni}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "3", Name: "Speakers", Brand: "Yamaha", Type: "Audio", Store: entity.StoreBoba}))

	boba, err := repo.List(ctx, repository.ItemFilter{Store: entity.StoreBoba})
	require.NoError(t, err)
	assert.Len(t, boba, 2)
	assert.Equal(t, "Plastic Chairs", boba[0].Name)

	found, err := repo.List(ctx, repository.ItemFilter{Search: "YAMAHA"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ID)

	assert.ErrorIs(t, repo.Create(ctx, &entity.Item{ID: "1"}), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "asha@wegesa.co"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u2", Email: "ASHA@wegesa.co"}), domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "Asha@Wegesa.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestInvoiceRepo_MaxNumberSuffix(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Invoices()
	require.NoError(t, repo.Create(ctx, &entity.Invoice{ID: "1", InvoiceNumber: "WGS-2025-001"}))
	require.NoError(t, repo.Create(ctx, &entity.Invoice{ID: "2", InvoiceNumber: "WGS-2026-001"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Invoice{ID: "3", InvoiceNumber: "WGS-2026-001"}), domain.ErrDuplicate)

	require.NoError(t, repo.Create(ctx, &entity.Invoice{ID: "4", InvoiceNumber: "WGS-2026-007"}))
	require.NoError(t, repo.Create(ctx, &entity.Invoice{ID: "5", InvoiceNumber: "WGS-2026-manual"}))

	n, err := repo.MaxNumberSuffix(ctx, "WGS-2026-")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = repo.MaxNumberSuffix(ctx, "WGS-2030-")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMovementRepo_ListOrdenRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Movements()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "old", CreatedAt: base, Status: entity.MovementStatusOut}))
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "new", CreatedAt: base.Add(time.Hour), Status: entity.MovementStatusReturned}))

	all, err := repo.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)

	out, err := repo.List(ctx, repository.MovementFilter{Status: entity.MovementStatusOut})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "old", out[0].ID)
}

func TestStore_UnidadesDeTrabajoConcurrentes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: "a", Quantity: 100, InStock: 100}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.ReturnRepository) error {
				it, err := items.GetForUpdate(ctx, "a")
				if err != nil {
					return err
				}
				it.InStock--
				return items.Update(ctx, it)
			})
		}()
	}
	wg.Wait()

	it, err := s.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 50, it.InStock)
}
