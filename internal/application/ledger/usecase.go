package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	rules "github.com/jhoicas/wegesa-api/internal/domain/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/rbac"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// UseCase libro de inventario: despachos, devoluciones y mantenimiento de artículos.
// Toda mutación corre dentro de una unidad de trabajo del TxRunner.
type UseCase struct {
	tx         TxRunner
	items      repository.ItemRepository
	movements  repository.MovementRepository
	returns    repository.ReturnRepository
	users      repository.UserRepository
	publisher  EventPublisher
	log        *logger.Logger
	accounting rules.Accounting
	now        func() time.Time
	newID      func() string
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithAccounting fija el modo de conteo de devoluciones (cumulative por defecto).
func WithAccounting(mode rules.Accounting) Option {
	return func(uc *UseCase) { uc.accounting = mode }
}

// WithPublisher publica DispatchCreated / ReturnRegistered después de cada commit.
func WithPublisher(p EventPublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithLogger registra despachos, devoluciones y fallos de publicación.
func WithLogger(l *logger.Logger) Option {
	return func(uc *UseCase) { uc.log = l }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso. Los repositorios sueltos se usan solo para lecturas.
func NewUseCase(
	tx TxRunner,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	returns repository.ReturnRepository,
	users repository.UserRepository,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		tx:         tx,
		items:      items,
		movements:  movements,
		returns:    returns,
		users:      users,
		log:        logger.Nop(),
		accounting: rules.AccountingCumulative,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Accounting modo activo de conteo de devoluciones.
func (uc *UseCase) Accounting() rules.Accounting {
	return uc.accounting
}

// DispatchInput entrada de CreateDispatch.
type DispatchInput struct {
	Store              entity.StoreID
	Lines              []entity.DispatchLine
	CustomerName       string
	ResponsiblePerson  string
	UseLocation        string
	ExpectedReturnAt   time.Time
	AuthorizedByUserID string
	IssuedByUserID     string
}

func (in *DispatchInput) validate() error {
	if !in.Store.Valid() {
		return domain.Invalid("bodega desconocida %q", in.Store)
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return domain.Invalid("customer_name requerido")
	}
	if strings.TrimSpace(in.ResponsiblePerson) == "" {
		return domain.Invalid("responsible_person requerido")
	}
	if strings.TrimSpace(in.UseLocation) == "" {
		return domain.Invalid("use_location requerido")
	}
	if in.ExpectedReturnAt.IsZero() {
		return domain.Invalid("expected_return_at requerido")
	}
	if in.AuthorizedByUserID == "" || in.IssuedByUserID == "" {
		return domain.Invalid("authorized_by_user_id e issued_by_user_id requeridos")
	}
	return rules.ValidateDispatchLines(in.Lines)
}

// CreateDispatch descuenta stock de todas las líneas o de ninguna y crea el movimiento en estado OUT.
// Si alguna línea supera el disponible devuelve *domain.InsufficientStockError sin escribir nada.
func (uc *UseCase) CreateDispatch(ctx context.Context, in DispatchInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	authorizer, err := uc.requireUser(ctx, in.AuthorizedByUserID, "authorized_by_user_id")
	if err != nil {
		return "", err
	}
	if !rbac.Can(authorizer.Role, rbac.AuthorizeDispatch) {
		return "", fmt.Errorf("%w: %s no puede autorizar despachos", domain.ErrForbidden, authorizer.Role.DisplayName())
	}
	if _, err := uc.requireUser(ctx, in.IssuedByUserID, "issued_by_user_id"); err != nil {
		return "", err
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:                 uc.newID(),
		CreatedAt:          now,
		Store:              in.Store,
		Lines:              entity.CloneLines(in.Lines),
		AuthorizedByUserID: in.AuthorizedByUserID,
		IssuedByUserID:     in.IssuedByUserID,
		CustomerName:       strings.TrimSpace(in.CustomerName),
		ResponsiblePerson:  strings.TrimSpace(in.ResponsiblePerson),
		UseLocation:        strings.TrimSpace(in.UseLocation),
		ExpectedReturnAt:   in.ExpectedReturnAt.UTC(),
		Status:             entity.MovementStatusOut,
	}

	err = uc.tx.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository, _ repository.ReturnRepository) error {
		locked, err := lockItems(ctx, items, mov.Lines)
		if err != nil {
			return err
		}
		if err := rules.CheckAvailability(mov.Store, locked, mov.Lines); err != nil {
			return err
		}
		if err := rules.ApplyDispatch(locked, mov.Lines); err != nil {
			return err
		}
		if err := saveItems(ctx, items, locked, now); err != nil {
			return err
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("store", string(mov.Store)).
		Int("lines", len(mov.Lines)).
		Int("total_out", mov.TotalOut()).
		Msg("despacho registrado")
	uc.publish(ctx, Event{
		Type:       EventDispatchCreated,
		MovementID: mov.ID,
		Store:      mov.Store,
		Status:     mov.Status,
		UserID:     mov.IssuedByUserID,
		Lines:      eventLines(mov.Lines),
	})
	return mov.ID, nil
}

// ReturnInput entrada de RegisterReturn.
type ReturnInput struct {
	MovementID       string
	ReceivedByUserID string
	Lines            []entity.DispatchLine
}

// ReturnResult registro creado y estado resultante del movimiento.
type ReturnResult struct {
	ReturnID string
	Status   entity.MovementStatus
}

// RegisterReturn reingresa stock, crea el ReturnRecord y recalcula el estado del movimiento.
// Rechaza devoluciones que superen lo despachado (acumulado por artículo).
func (uc *UseCase) RegisterReturn(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	if in.MovementID == "" {
		return nil, domain.ErrMovementNotFound
	}
	lines, err := rules.NormalizeReturnLines(in.Lines)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireUser(ctx, in.ReceivedByUserID, "received_by_user_id"); err != nil {
		return nil, err
	}

	now := uc.now()
	rec := &entity.ReturnRecord{
		ID:               uc.newID(),
		MovementID:       in.MovementID,
		ReturnedAt:       now,
		Lines:            lines,
		ReceivedByUserID: in.ReceivedByUserID,
	}
	var mov *entity.Movement

	err = uc.tx.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository, returns repository.ReturnRepository) error {
		var err error
		mov, err = movements.GetForUpdate(ctx, in.MovementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		previous, err := returns.ListByMovement(ctx, mov.ID)
		if err != nil {
			return err
		}
		if err := rules.CheckReturn(mov, previous, lines); err != nil {
			return err
		}
		locked, err := lockItems(ctx, items, lines)
		if err != nil {
			return err
		}
		if err := rules.ApplyReturn(locked, lines); err != nil {
			return err
		}
		if err := saveItems(ctx, items, locked, now); err != nil {
			return err
		}
		if err := returns.Create(ctx, rec); err != nil {
			return err
		}
		mov.Status = rules.NextStatus(mov.Status, mov.TotalOut(), rules.ReturnedForStatus(uc.accounting, previous, lines))
		return movements.UpdateStatus(ctx, mov.ID, mov.Status)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("return_id", rec.ID).
		Int("returned", entity.SumLines(lines)).
		Str("status", string(mov.Status)).
		Str("accounting", string(uc.accounting)).
		Msg("devolución registrada")
	uc.publish(ctx, Event{
		Type:       EventReturnRegistered,
		MovementID: mov.ID,
		ReturnID:   rec.ID,
		Store:      mov.Store,
		Status:     mov.Status,
		UserID:     rec.ReceivedByUserID,
		Lines:      eventLines(lines),
	})
	return &ReturnResult{ReturnID: rec.ID, Status: mov.Status}, nil
}

// lockItems bloquea los artículos en orden de id para no provocar interbloqueos entre unidades de trabajo.
func lockItems(ctx context.Context, items repository.ItemRepository, lines []entity.DispatchLine) (map[string]*entity.Item, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	sort.Strings(ids)
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		it, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, fmt.Errorf("artículo %s: %w", id, domain.ErrNotFound)
		}
		out[id] = it
	}
	return out, nil
}

func saveItems(ctx context.Context, items repository.ItemRepository, locked map[string]*entity.Item, now time.Time) error {
	ids := make([]string, 0, len(locked))
	for id := range locked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		it := locked[id]
		it.UpdatedAt = now
		if err := items.Update(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) requireUser(ctx context.Context, id, field string) (*entity.User, error) {
	if id == "" {
		return nil, domain.Invalid("%s requerido", field)
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Invalid("%s: usuario %s no existe", field, id)
	}
	return u, nil
}

// publish envía el evento; un fallo se registra y no afecta la operación ya confirmada.
func (uc *UseCase) publish(ctx context.Context, evt Event) {
	if uc.publisher == nil {
		return
	}
	evt.ID = uc.newID()
	evt.OccurredAt = uc.now()
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.log.Warn().Err(err).
			Str("event_type", string(evt.Type)).
			Str("movement_id", evt.MovementID).
			Msg("no se pudo publicar el evento")
	}
}

func eventLines(lines []entity.DispatchLine) []EventLine {
	out := make([]EventLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, EventLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return out
}
