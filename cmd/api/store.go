package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wegesa-api/pkg/config"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// stores repositorios del driver elegido.
type stores struct {
	tx           ledger.TxRunner
	items        repository.ItemRepository
	movements    repository.MovementRepository
	returns      repository.ReturnRepository
	users        repository.UserRepository
	employees    repository.EmployeeRepository
	invoices     repository.InvoiceRepository
	transactions repository.TransactionRepository
	bookings     repository.BookingRepository
	close        func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		return &stores{
			tx:           postgres.NewTxRunner(pool),
			items:        postgres.NewItemRepository(pool),
			movements:    postgres.NewMovementRepository(pool),
			returns:      postgres.NewReturnRepository(pool),
			users:        postgres.NewUserRepository(pool),
			employees:    postgres.NewEmployeeRepository(pool),
			invoices:     postgres.NewInvoiceRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			bookings:     postgres.NewBookingRepository(pool),
			close:        pool.Close,
		}, nil
	default:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			tx:           s,
			items:        s.Items(),
			movements:    s.Movements(),
			returns:      s.Returns(),
			users:        s.Users(),
			employees:    s.Employees(),
			invoices:     s.Invoices(),
			transactions: s.Transactions(),
			bookings:     s.Bookings(),
			close:        func() {},
		}, nil
	}
}
