// Package seed carga los datos iniciales: usuarios, artículos y empleados de demostración,
// y artículos desde un CSV.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// StableID id determinista para los registros sembrados (mismo id en cada arranque).
func StableID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("wegesa:"+kind+":"+key)).String()
}

// Seeder siembra de forma idempotente: lo que ya existe no se toca.
type Seeder struct {
	users     repository.UserRepository
	items     repository.ItemRepository
	employees repository.EmployeeRepository
	ledger    *ledger.UseCase
	log       *logger.Logger
	now       func() time.Time
}

func NewSeeder(
	users repository.UserRepository,
	items repository.ItemRepository,
	employees repository.EmployeeRepository,
	ledgerUC *ledger.UseCase,
	log *logger.Logger,
) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{
		users:     users,
		items:     items,
		employees: employees,
		ledger:    ledgerUC,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Result conteo de registros creados.
type Result struct {
	Users     int
	Items     int
	Employees int
}

var demoUsers = []struct {
	key, name, email string
	role             entity.Role
}{
	{"u1", "Asha M.", "asha@wegesa.co", entity.RoleSuperAdmin},
	{"u2", "Jonas K.", "jonas@wegesa.co", entity.RoleOperation},
	{"u3", "Neema D.", "neema@wegesa.co", entity.RoleStoreKeeper},
}

var demoItems = []struct {
	key, name, brand, typ string
	quantity              int
	store                 entity.StoreID
}{
	{"i1", "Plastic Chairs", "Generic", "Seating", 500, entity.StoreBoba},
	{"i2", "Banquet Tables", "Classic", "Tables", 50, entity.StoreMikocheni},
	{"i3", `15" Speakers`, "Yamaha", "Audio", 12, entity.StoreBoba},
	{"i4", "LED Par Lights", "Chauvet", "Lighting", 30, entity.StoreMikocheni},
	{"i5", "Generators 5kVA", "Honda", "Power", 4, entity.StoreBoba},
}

var demoEmployees = []struct {
	key, name, position, mobile string
	gender                      entity.Gender
	birth, start, end           string
}{
	{"emp1", "John Mwangi", "Event Coordinator", "+255 712 345 678", entity.GenderMale, "1990-05-15", "2023-01-15", "2025-01-14"},
	{"emp2", "Sarah Komba", "Store Manager", "+255 713 456 789", entity.GenderFemale, "1992-08-22", "2023-03-01", "2025-02-28"},
}

// Demo siembra usuarios (todos con password), artículos y empleados.
func (s *Seeder) Demo(ctx context.Context, password string) (*Result, error) {
	res := &Result{}
	now := s.now()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	for _, u := range demoUsers {
		existing, err := s.users.GetByEmail(ctx, u.email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		err = s.users.Create(ctx, &entity.User{
			ID:           StableID("user", u.key),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: usuario %s: %w", u.email, err)
		}
		res.Users++
	}

	for _, i := range demoItems {
		id := StableID("item", i.key)
		existing, err := s.items.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		err = s.items.Create(ctx, &entity.Item{
			ID:          id,
			Name:        i.name,
			Brand:       i.brand,
			Type:        i.typ,
			Quantity:    i.quantity,
			InStock:     i.quantity,
			Store:       i.store,
			DateOfEntry: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: artículo %s: %w", i.name, err)
		}
		res.Items++
	}

	for _, e := range demoEmployees {
		id := StableID("employee", e.key)
		existing, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		err = s.employees.Create(ctx, &entity.Employee{
			ID:                id,
			FullName:          e.name,
			DateOfBirth:       date(e.birth),
			Gender:            e.gender,
			Position:          e.position,
			MobileContact:     e.mobile,
			ContractStartDate: date(e.start),
			ContractEndDate:   date(e.end),
			IsActive:          true,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: empleado %s: %w", e.name, err)
		}
		res.Employees++
	}

	s.log.Info().Int("users", res.Users).Int("items", res.Items).Int("employees", res.Employees).Msg("datos de demostración cargados")
	return res, nil
}

// Items da de alta los artículos leídos del CSV; se detiene en el primero inválido.
func (s *Seeder) Items(ctx context.Context, rows []dto.CreateItemRequest) (int, error) {
	for i, r := range rows {
		if _, err := s.ledger.AddItem(ctx, r); err != nil {
			return i, fmt.Errorf("seed: artículo %d (%s): %w", i+1, r.Name, err)
		}
	}
	s.log.Info().Int("items", len(rows)).Msg("artículos importados")
	return len(rows), nil
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
