// Package analytics contiene los casos de uso de lectura para el dashboard,
// el reporte de utilización y los resúmenes de finanzas, eventos y personal.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

const (
	recentMovements = 5 // filas del widget de últimos movimientos
	trendBuckets    = 7
	otherType       = "Other"
)

// Period ventana del reporte.
type Period string

const (
	PeriodWeek    Period = "WEEK"
	PeriodMonth   Period = "MONTH"
	PeriodQuarter Period = "QUARTER"
	PeriodYear    Period = "YEAR"
)

// ParsePeriod vacío es MONTH.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	}
	return "", domain.Invalid("periodo desconocido %q", s)
}

// DashboardUseCase KPIs de inventario y reporte de utilización.
//
// Fuente de datos: repositorios de artículos y movimientos (solo lectura).
// Los cortes de semana, mes y trimestre se calculan en la zona horaria configurada.
type DashboardUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil usa UTC.
func NewDashboardUseCase(items repository.ItemRepository, movements repository.MovementRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{items: items, movements: movements, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type snapshot struct {
	items     []*entity.Item
	movements []*entity.Movement
}

// load lee artículos y movimientos en paralelo.
func (uc *DashboardUseCase) load(ctx context.Context) (*snapshot, error) {
	type itemsResult struct {
		list []*entity.Item
		err  error
	}
	type movementsResult struct {
		list []*entity.Movement
		err  error
	}

	itemsCh := make(chan itemsResult, 1)
	movsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.items.List(ctx, repository.ItemFilter{})
		itemsCh <- itemsResult{list, err}
	}()
	go func() {
		list, err := uc.movements.List(ctx, repository.MovementFilter{})
		movsCh <- movementsResult{list, err}
	}()

	items := <-itemsCh
	movs := <-movsCh

	if items.err != nil {
		return nil, fmt.Errorf("dashboard: artículos: %w", items.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movs.err)
	}
	return &snapshot{items: items.list, movements: movs.list}, nil
}

// GetSummary totales de stock, alquileres activos, vencidos y los cinco movimientos más recientes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	total, inStock := stockTotals(snap.items)
	out := &dto.DashboardSummaryDTO{
		TotalItems:      total,
		InStock:         inStock,
		Out:             total - inStock,
		RecentMovements: make([]dto.RecentMovementDTO, 0, recentMovements),
	}
	out.ActiveRentals, out.OverdueReturns = rentalCounts(snap.movements, now)

	// el repositorio ya entrega del más reciente al más antiguo
	for _, m := range snap.movements {
		if len(out.RecentMovements) == recentMovements {
			break
		}
		out.RecentMovements = append(out.RecentMovements, dto.RecentMovementDTO{
			ID:           m.ID,
			CreatedAt:    m.CreatedAt,
			Store:        string(m.Store),
			CustomerName: m.CustomerName,
			UseLocation:  m.UseLocation,
			TotalOut:     m.TotalOut(),
			Status:       string(m.Status),
			Overdue:      m.Overdue(now),
		})
	}
	return out, nil
}

// Report reporte del periodo en curso: utilización, despachos del periodo,
// distribución por bodega, tendencia de siete cortes y distribución por tipo.
func (uc *DashboardUseCase) Report(ctx context.Context, period Period) (*dto.ReportDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)
	start, end := periodRange(period, now)

	total, inStock := stockTotals(snap.items)
	rep := &dto.ReportDTO{
		Period:     string(period),
		Start:      start,
		End:        end,
		TotalItems: total,
		InStock:    inStock,
		Out:        total - inStock,
	}
	if total > 0 {
		rep.Utilization = int(float64(total-inStock)/float64(total)*100 + 0.5)
	}
	rep.TotalDispatches, rep.CompletedReturns = countWithin(snap.movements, start, end)
	rep.ActiveRentals, rep.OverdueReturns = rentalCounts(snap.movements, now)
	rep.Stores = storeDistribution(snap.items)
	rep.Trend = uc.trend(period, now, snap.movements)
	rep.Types = typeDistribution(snap.items)
	return rep, nil
}

func (uc *DashboardUseCase) trend(period Period, now time.Time, movs []*entity.Movement) []dto.TrendPointDTO {
	points := make([]dto.TrendPointDTO, 0, trendBuckets)
	for i := trendBuckets - 1; i >= 0; i-- {
		var start, end time.Time
		var label string
		if period == PeriodWeek {
			start = startOfWeek(now.AddDate(0, 0, -7*i))
			end = start.AddDate(0, 0, 7)
			label = start.Format("Jan 02")
		} else {
			start = startOfMonth(now).AddDate(0, -i, 0)
			end = start.AddDate(0, 1, 0)
			label = start.Format("Jan 2006")
		}
		dispatches, returns := countWithin(movs, start, end)
		points = append(points, dto.TrendPointDTO{Label: label, Start: start, Dispatches: dispatches, Returns: returns})
	}
	return points
}

// periodRange [start, end) del periodo que contiene now. Las semanas empiezan el domingo.
func periodRange(p Period, now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeek:
		s := startOfWeek(now)
		return s, s.AddDate(0, 0, 7)
	case PeriodQuarter:
		q := (int(now.Month())-1)/3*3 + 1
		s := time.Date(now.Year(), time.Month(q), 1, 0, 0, 0, 0, now.Location())
		return s, s.AddDate(0, 3, 0)
	case PeriodYear:
		s := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return s, s.AddDate(1, 0, 0)
	default:
		s := startOfMonth(now)
		return s, s.AddDate(0, 1, 0)
	}
}

func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func stockTotals(items []*entity.Item) (total, inStock int) {
	for _, it := range items {
		total += it.Quantity
		inStock += it.InStock
	}
	return total, inStock
}

func rentalCounts(movs []*entity.Movement, now time.Time) (active, overdue int) {
	for _, m := range movs {
		if m.Active() {
			active++
		}
		if m.Overdue(now) {
			overdue++
		}
	}
	return active, overdue
}

// countWithin despachos creados en [start, end) y cuántos de ellos ya están RETURNED.
func countWithin(movs []*entity.Movement, start, end time.Time) (dispatches, returned int) {
	for _, m := range movs {
		if m.CreatedAt.Before(start) || !m.CreatedAt.Before(end) {
			continue
		}
		dispatches++
		if m.Status == entity.MovementStatusReturned {
			returned++
		}
	}
	return dispatches, returned
}

func storeDistribution(items []*entity.Item) []dto.StoreDistributionDTO {
	stores := entity.Stores()
	out := make([]dto.StoreDistributionDTO, 0, len(stores))
	for _, s := range stores {
		row := dto.StoreDistributionDTO{Store: string(s), Name: s.DisplayName()}
		for _, it := range items {
			if it.Store != s {
				continue
			}
			row.Items++
			row.Quantity += it.Quantity
			row.InStock += it.InStock
		}
		out = append(out, row)
	}
	return out
}

// typeDistribution cantidad por tipo, mayor primero; tipo vacío cuenta como "Other".
func typeDistribution(items []*entity.Item) []dto.TypeShareDTO {
	byType := make(map[string]int)
	for _, it := range items {
		t := strings.TrimSpace(it.Type)
		if t == "" {
			t = otherType
		}
		byType[t] += it.Quantity
	}
	out := make([]dto.TypeShareDTO, 0, len(byType))
	for t, q := range byType {
		out = append(out, dto.TypeShareDTO{Type: t, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Type < out[j].Type
	})
	return out
}
