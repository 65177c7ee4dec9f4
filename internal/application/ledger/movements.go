package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	rules "github.com/jhoicas/wegesa-api/internal/domain/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// CreateDispatchFromRequest adapta el body HTTP a CreateDispatch.
// issuedBy es el usuario del token; se usa si el body no trae issued_by_user_id.
func (uc *UseCase) CreateDispatchFromRequest(ctx context.Context, issuedBy string, in dto.CreateDispatchRequest) (string, error) {
	input := DispatchInput{
		Store:              entity.StoreID(strings.ToUpper(strings.TrimSpace(in.Store))),
		Lines:              toLines(in.Lines),
		CustomerName:       in.CustomerName,
		ResponsiblePerson:  in.ResponsiblePerson,
		UseLocation:        in.UseLocation,
		ExpectedReturnAt:   in.ExpectedReturnAt,
		AuthorizedByUserID: in.AuthorizedByUserID,
		IssuedByUserID:     in.IssuedByUserID,
	}
	if input.IssuedByUserID == "" {
		input.IssuedByUserID = issuedBy
	}
	return uc.CreateDispatch(ctx, input)
}

// RegisterReturnFromRequest adapta el body HTTP a RegisterReturn.
func (uc *UseCase) RegisterReturnFromRequest(ctx context.Context, movementID, receivedBy string, in dto.RegisterReturnRequest) (*dto.RegisterReturnResponse, error) {
	input := ReturnInput{
		MovementID:       movementID,
		ReceivedByUserID: in.ReceivedByUserID,
		Lines:            toLines(in.Lines),
	}
	if input.ReceivedByUserID == "" {
		input.ReceivedByUserID = receivedBy
	}
	res, err := uc.RegisterReturn(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterReturnResponse{ReturnID: res.ReturnID, MovementID: movementID, Status: string(res.Status)}, nil
}

// MovementDetail movimiento con sus devoluciones y los artículos referenciados (PDF, detalle).
type MovementDetail struct {
	Movement *entity.Movement
	Returns  []*entity.ReturnRecord
	Items    map[string]*entity.Item
	Balances []rules.LineBalance
}

// LoadMovement carga el movimiento con su historial. ErrMovementNotFound si no existe.
func (uc *UseCase) LoadMovement(ctx context.Context, id string) (*MovementDetail, error) {
	mov, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	recs, err := uc.returns.ListByMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemIndex(ctx)
	if err != nil {
		return nil, err
	}
	return &MovementDetail{Movement: mov, Returns: recs, Items: items, Balances: rules.Balances(mov, recs)}, nil
}

// GetMovement detalle con saldos por línea y registros de devolución.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	d, err := uc.LoadMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(d.Movement, d.Returns, d.Items, uc.now())
	resp.Returns = make([]dto.ReturnRecordResponse, 0, len(d.Returns))
	for _, r := range d.Returns {
		resp.Returns = append(resp.Returns, toReturnResponse(r))
	}
	return resp, nil
}

// ListMovements lista del más reciente al más antiguo. Overdue filtra despachos vencidos en estado OUT.
func (uc *UseCase) ListMovements(ctx context.Context, q dto.MovementListQuery) ([]dto.MovementResponse, error) {
	f := repository.MovementFilter{
		Store:  entity.StoreID(strings.ToUpper(strings.TrimSpace(q.Store))),
		Status: entity.MovementStatus(strings.ToUpper(strings.TrimSpace(q.Status))),
		Search: q.Search,
	}
	if f.Store != "" && !f.Store.Valid() {
		return nil, domain.Invalid("bodega desconocida %q", q.Store)
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("estado desconocido %q", q.Status)
	}
	movs, err := uc.movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemIndex(ctx)
	if err != nil {
		return nil, err
	}
	all, err := uc.returns.List(ctx)
	if err != nil {
		return nil, err
	}
	byMovement := make(map[string][]*entity.ReturnRecord)
	for _, r := range all {
		byMovement[r.MovementID] = append(byMovement[r.MovementID], r)
	}
	now := uc.now()
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		if q.Overdue && !m.Overdue(now) {
			continue
		}
		out = append(out, *toMovementResponse(m, byMovement[m.ID], items, now))
	}
	return out, nil
}

// ListReturns registros de devolución de un movimiento en orden cronológico.
func (uc *UseCase) ListReturns(ctx context.Context, movementID string) ([]dto.ReturnRecordResponse, error) {
	mov, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	recs, err := uc.returns.ListByMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, toReturnResponse(r))
	}
	return out, nil
}

func (uc *UseCase) itemIndex(ctx context.Context) (map[string]*entity.Item, error) {
	list, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Item, len(list))
	for _, it := range list {
		idx[it.ID] = it
	}
	return idx, nil
}

func toLines(in []dto.LineDTO) []entity.DispatchLine {
	out := make([]entity.DispatchLine, 0, len(in))
	for _, l := range in {
		out = append(out, entity.DispatchLine{ItemID: strings.TrimSpace(l.ItemID), Quantity: l.Quantity})
	}
	return out
}

func toLineDTOs(in []entity.DispatchLine) []dto.LineDTO {
	out := make([]dto.LineDTO, 0, len(in))
	for _, l := range in {
		out = append(out, dto.LineDTO{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return out
}

// ItemName nombre del artículo o su id si ya no existe.
func ItemName(items map[string]*entity.Item, id string) string {
	if it, ok := items[id]; ok {
		return it.Name
	}
	return id
}

func toMovementResponse(m *entity.Movement, recs []*entity.ReturnRecord, items map[string]*entity.Item, now time.Time) *dto.MovementResponse {
	balances := rules.Balances(m, recs)
	lines := make([]dto.MovementLineResponse, 0, len(balances))
	for _, b := range balances {
		lines = append(lines, dto.MovementLineResponse{
			ItemID:      b.ItemID,
			ItemName:    ItemName(items, b.ItemID),
			Quantity:    b.Dispatched,
			Returned:    b.Returned,
			Outstanding: b.Outstanding,
		})
	}
	return &dto.MovementResponse{
		ID:                 m.ID,
		CreatedAt:          m.CreatedAt,
		Store:              string(m.Store),
		Lines:              lines,
		TotalOut:           m.TotalOut(),
		TotalReturned:      rules.TotalReturned(recs),
		AuthorizedByUserID: m.AuthorizedByUserID,
		IssuedByUserID:     m.IssuedByUserID,
		CustomerName:       m.CustomerName,
		ResponsiblePerson:  m.ResponsiblePerson,
		UseLocation:        m.UseLocation,
		ExpectedReturnAt:   m.ExpectedReturnAt,
		Status:             string(m.Status),
		Overdue:            m.Overdue(now),
	}
}

func toReturnResponse(r *entity.ReturnRecord) dto.ReturnRecordResponse {
	return dto.ReturnRecordResponse{
		ID:               r.ID,
		MovementID:       r.MovementID,
		ReturnedAt:       r.ReturnedAt,
		Lines:            toLineDTOs(r.Lines),
		ReceivedByUserID: r.ReceivedByUserID,
	}
}
