package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

type InvoiceRepo struct {
	db access
}

func numberTaken(s *state, number, exceptID string) bool {
	for _, inv := range s.invoices {
		if inv.ID != exceptID && inv.InvoiceNumber == number {
			return true
		}
	}
	return false
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.invoices[inv.ID]; ok || numberTaken(s, inv.InvoiceNumber, "") {
			return domain.ErrDuplicate
		}
		s.invoices[inv.ID] = cloneInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.read(ctx, func(s *state) error {
		if inv, ok := s.invoices[id]; ok {
			cp := cloneInvoice(inv)
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.invoices[inv.ID]; !ok {
			return domain.ErrNotFound
		}
		if numberTaken(s, inv.InvoiceNumber, inv.ID) {
			return domain.ErrDuplicate
		}
		s.invoices[inv.ID] = cloneInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.invoices, id)
		return nil
	})
}

// List ordena por fecha de emisión descendente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.db.read(ctx, func(s *state) error {
		for _, inv := range s.invoices {
			if f.Status != "" && inv.Status != f.Status {
				continue
			}
			if !textmatch.AnyContains(f.Search, inv.InvoiceNumber, inv.CustomerName) {
				continue
			}
			cp := cloneInvoice(inv)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.After(out[j].IssueDate)
		}
		return out[i].InvoiceNumber > out[j].InvoiceNumber
	})
	return out, err
}

func (r *InvoiceRepo) MaxNumberSuffix(ctx context.Context, prefix string) (int, error) {
	max := 0
	err := r.db.read(ctx, func(s *state) error {
		for _, inv := range s.invoices {
			suffix, ok := strings.CutPrefix(inv.InvoiceNumber, prefix)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(suffix); err == nil && n > max {
				max = n
			}
		}
		return nil
	})
	return max, err
}
