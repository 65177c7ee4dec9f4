// Package memory implementa los repositorios sobre un estado en memoria protegido por un RWMutex.
// Es el almacén por defecto y el que usan los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

type state struct {
	items        map[string]entity.Item
	movements    map[string]entity.Movement
	returns      []entity.ReturnRecord
	users        map[string]entity.User
	employees    map[string]entity.Employee
	invoices     map[string]entity.Invoice
	transactions map[string]entity.Transaction
	bookings     map[string]entity.Booking
}

func newState() state {
	return state{
		items:        make(map[string]entity.Item),
		movements:    make(map[string]entity.Movement),
		users:        make(map[string]entity.User),
		employees:    make(map[string]entity.Employee),
		invoices:     make(map[string]entity.Invoice),
		transactions: make(map[string]entity.Transaction),
		bookings:     make(map[string]entity.Booking),
	}
}

// clone copia profunda; las unidades de trabajo escriben sobre la copia.
func (s state) clone() state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = cloneMovement(v)
	}
	c.returns = make([]entity.ReturnRecord, 0, len(s.returns))
	for _, r := range s.returns {
		c.returns = append(c.returns, cloneReturn(r))
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	return c
}

func cloneMovement(m entity.Movement) entity.Movement {
	cp := m
	cp.Lines = entity.CloneLines(m.Lines)
	return cp
}

func cloneReturn(r entity.ReturnRecord) entity.ReturnRecord {
	cp := r
	cp.Lines = entity.CloneLines(r.Lines)
	return cp
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	cp := inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return cp
}

// access abstrae cómo un repositorio llega al estado: con bloqueo propio (Store)
// o dentro de una unidad de trabajo que ya tiene el lock (txAccess).
type access interface {
	read(ctx context.Context, fn func(*state) error) error
	write(ctx context.Context, fn func(*state) error) error
}

// Store estado compartido. El valor cero no es usable; usar NewStore.
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

// write aplica fn directamente; cada operación de repositorio valida antes de mutar.
func (s *Store) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no falla.
// Las unidades de trabajo se serializan con el lock de escritura.
func (s *Store) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	returns repository.ReturnRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txAccess{state: s.state.clone()}
	if err := fn(&ItemRepo{db: tx}, &MovementRepo{db: tx}, &ReturnRepo{db: tx}); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

type txAccess struct {
	state state
}

func (t *txAccess) read(_ context.Context, fn func(*state) error) error  { return fn(&t.state) }
func (t *txAccess) write(_ context.Context, fn func(*state) error) error { return fn(&t.state) }

// Items repositorio de artículos fuera de unidad de trabajo.
func (s *Store) Items() *ItemRepo { return &ItemRepo{db: s} }

func (s *Store) Movements() *MovementRepo { return &MovementRepo{db: s} }

func (s *Store) Returns() *ReturnRepo { return &ReturnRepo{db: s} }

func (s *Store) Users() *UserRepo { return &UserRepo{db: s} }

func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{db: s} }

func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{db: s} }

func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{db: s} }

func (s *Store) Bookings() *BookingRepo { return &BookingRepo{db: s} }
