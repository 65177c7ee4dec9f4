package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	rules "github.com/jhoicas/wegesa-api/internal/domain/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// AddItem registra un artículo. InStock por defecto es Quantity.
func (uc *UseCase) AddItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := uc.now()
	it := &entity.Item{
		ID:          uc.newID(),
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Type:        strings.TrimSpace(in.Type),
		Quantity:    in.Quantity,
		InStock:     in.Quantity,
		Store:       entity.StoreID(strings.ToUpper(strings.TrimSpace(in.Store))),
		DateOfEntry: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.InStock != nil {
		it.InStock = *in.InStock
	}
	if in.DateOfEntry != nil {
		it.DateOfEntry = in.DateOfEntry.UTC()
	}
	if err := validateItem(it); err != nil {
		return nil, err
	}
	if err := uc.items.Create(ctx, it); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", it.ID).Str("store", string(it.Store)).Int("quantity", it.Quantity).Msg("artículo creado")
	return toItemResponse(it), nil
}

// UpdateItem aplica el parche dentro de una unidad de trabajo y revalida el invariante de stock.
// No permite cambiar de bodega mientras haya unidades despachadas.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var updated *entity.Item
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository, returns repository.ReturnRepository) error {
		it, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		pending, err := outstandingUnits(ctx, movements, returns, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			it.Name = strings.TrimSpace(*in.Name)
		}
		if in.Brand != nil {
			it.Brand = strings.TrimSpace(*in.Brand)
		}
		if in.Type != nil {
			it.Type = strings.TrimSpace(*in.Type)
		}
		if in.Quantity != nil {
			it.Quantity = *in.Quantity
		}
		if in.InStock != nil {
			it.InStock = *in.InStock
		}
		if in.Store != nil {
			store := entity.StoreID(strings.ToUpper(strings.TrimSpace(*in.Store)))
			if store != it.Store && pending > 0 {
				return domain.ErrConflict
			}
			it.Store = store
		}
		if in.DateOfEntry != nil {
			it.DateOfEntry = in.DateOfEntry.UTC()
		}
		if err := validateItem(it); err != nil {
			return err
		}
		// Lo que sigue fuera tiene que poder volver sin romper inStock <= quantity.
		if it.Out() < pending {
			return fmt.Errorf("%w: %d unidades siguen fuera en despachos abiertos", domain.ErrConflict, pending)
		}
		it.UpdatedAt = uc.now()
		updated = it
		return items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// DeleteItem elimina el artículo solo si no tiene unidades fuera de bodega.
func (uc *UseCase) DeleteItem(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository, returns repository.ReturnRepository) error {
		it, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		pending, err := outstandingUnits(ctx, movements, returns, id)
		if err != nil {
			return err
		}
		if it.Out() > 0 || pending > 0 {
			return domain.ErrConflict
		}
		return items.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Msg("artículo eliminado")
	return nil
}

func (uc *UseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(it), nil
}

func (uc *UseCase) ListItems(ctx context.Context, q dto.ItemListQuery) ([]dto.ItemResponse, error) {
	f := repository.ItemFilter{
		Store:  entity.StoreID(strings.ToUpper(strings.TrimSpace(q.Store))),
		Type:   q.Type,
		Search: q.Search,
	}
	if f.Store != "" && !f.Store.Valid() {
		return nil, domain.Invalid("bodega desconocida %q", q.Store)
	}
	list, err := uc.items.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

func validateItem(it *entity.Item) error {
	if it.Name == "" {
		return domain.Invalid("name requerido")
	}
	if !it.Store.Valid() {
		return domain.Invalid("bodega desconocida %q", it.Store)
	}
	if it.Quantity < 0 {
		return domain.Invalid("quantity no puede ser negativa")
	}
	if !it.StockValid() {
		return domain.ErrInvariantViolation
	}
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Brand:       it.Brand,
		Type:        it.Type,
		Quantity:    it.Quantity,
		InStock:     it.InStock,
		Out:         it.Out(),
		Store:       string(it.Store),
		DateOfEntry: it.DateOfEntry,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// outstandingUnits unidades del artículo pendientes de devolución en movimientos no RETURNED.
func outstandingUnits(ctx context.Context, movements repository.MovementRepository, returns repository.ReturnRepository, itemID string) (int, error) {
	movs, err := movements.List(ctx, repository.MovementFilter{})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range movs {
		if m.Status == entity.MovementStatusReturned || m.DispatchedQuantity(itemID) == 0 {
			continue
		}
		recs, err := returns.ListByMovement(ctx, m.ID)
		if err != nil {
			return 0, err
		}
		for _, b := range rules.Balances(m, recs) {
			if b.ItemID == itemID {
				total += b.Outstanding
			}
		}
	}
	return total, nil
}
