package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de fichas de empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := time.Now().UTC()
	e := &entity.Employee{
		ID:                uuid.New().String(),
		FullName:          strings.TrimSpace(in.FullName),
		DateOfBirth:       in.DateOfBirth,
		Gender:            entity.Gender(upper(in.Gender)),
		Position:          strings.TrimSpace(in.Position),
		MobileContact:     strings.TrimSpace(in.MobileContact),
		ContractStartDate: in.ContractStartDate,
		ContractEndDate:   in.ContractEndDate,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		e.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.DateOfBirth != nil {
		e.DateOfBirth = *in.DateOfBirth
	}
	if in.Gender != nil {
		e.Gender = entity.Gender(upper(*in.Gender))
	}
	if in.Position != nil {
		e.Position = strings.TrimSpace(*in.Position)
	}
	if in.MobileContact != nil {
		e.MobileContact = strings.TrimSpace(*in.MobileContact)
	}
	if in.ContractStartDate != nil {
		e.ContractStartDate = *in.ContractStartDate
	}
	if in.ContractEndDate != nil {
		e.ContractEndDate = *in.ContractEndDate
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *EmployeeUseCase) List(ctx context.Context, q dto.EmployeeListQuery) ([]dto.EmployeeResponse, error) {
	active, err := parseActive(q.Active)
	if err != nil {
		return nil, err
	}
	f := repository.EmployeeFilter{Gender: entity.Gender(upper(q.Gender)), Active: active, Search: q.Search}
	if f.Gender != "" && !f.Gender.Valid() {
		return nil, domain.Invalid("género desconocido %q", q.Gender)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

func validateEmployee(e *entity.Employee) error {
	if e.FullName == "" {
		return domain.Invalid("full_name requerido")
	}
	if !e.Gender.Valid() {
		return domain.Invalid("género desconocido %q", e.Gender)
	}
	if e.Position == "" {
		return domain.Invalid("position requerido")
	}
	if e.MobileContact == "" {
		return domain.Invalid("mobile_contact requerido")
	}
	if e.DateOfBirth.IsZero() || e.ContractStartDate.IsZero() || e.ContractEndDate.IsZero() {
		return domain.Invalid("date_of_birth, contract_start_date y contract_end_date requeridos")
	}
	if e.ContractEndDate.Before(e.ContractStartDate) {
		return domain.Invalid("el contrato termina antes de empezar")
	}
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:                e.ID,
		FullName:          e.FullName,
		DateOfBirth:       e.DateOfBirth,
		Gender:            string(e.Gender),
		Position:          e.Position,
		MobileContact:     e.MobileContact,
		ContractStartDate: e.ContractStartDate,
		ContractEndDate:   e.ContractEndDate,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
