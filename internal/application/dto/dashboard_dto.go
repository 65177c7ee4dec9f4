package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalItems      int                 `json:"total_items"` // Σ quantity
	InStock         int                 `json:"in_stock"`
	Out             int                 `json:"out"`
	ActiveRentals   int                 `json:"active_rentals"`  // movimientos no RETURNED
	OverdueReturns  int                 `json:"overdue_returns"` // OUT con fecha de retorno vencida
	RecentMovements []RecentMovementDTO `json:"recent_movements"`
}

// RecentMovementDTO fila del widget de últimos movimientos.
type RecentMovementDTO struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Store        string    `json:"store"`
	CustomerName string    `json:"customer_name"`
	UseLocation  string    `json:"use_location"`
	TotalOut     int       `json:"total_out"`
	Status       string    `json:"status"`
	Overdue      bool      `json:"overdue"`
}

// ReportQuery parámetros de GET /api/reports.
type ReportQuery struct {
	Period string `query:"period"` // WEEK | MONTH | QUARTER | YEAR; por defecto MONTH
}

// ReportDTO reporte de utilización del periodo.
type ReportDTO struct {
	Period           string                 `json:"period"`
	Start            time.Time              `json:"start"`
	End              time.Time              `json:"end"`
	TotalItems       int                    `json:"total_items"`
	InStock          int                    `json:"in_stock"`
	Out              int                    `json:"out"`
	Utilization      int                    `json:"utilization"` // porcentaje entero
	TotalDispatches  int                    `json:"total_dispatches"`
	ActiveRentals    int                    `json:"active_rentals"`
	CompletedReturns int                    `json:"completed_returns"`
	OverdueReturns   int                    `json:"overdue_returns"`
	Stores           []StoreDistributionDTO `json:"stores"`
	Trend            []TrendPointDTO        `json:"trend"`
	Types            []TypeShareDTO         `json:"types"`
}

type StoreDistributionDTO struct {
	Store    string `json:"store"`
	Name     string `json:"name"`
	Items    int    `json:"items"`
	Quantity int    `json:"quantity"`
	InStock  int    `json:"in_stock"`
}

// TrendPointDTO semana (WEEK) o mes (resto) de la tendencia.
type TrendPointDTO struct {
	Label      string    `json:"label"`
	Start      time.Time `json:"start"`
	Dispatches int       `json:"dispatches"`
	Returns    int       `json:"returns"`
}

type TypeShareDTO struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}
