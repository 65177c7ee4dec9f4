package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/wegesa-api/internal/application/analytics"
	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// AnalyticsHandler tablero, reportes por periodo y resúmenes de back-office.
type AnalyticsHandler struct {
	dashboard *appanalytics.DashboardUseCase
	summary   *appanalytics.SummaryUseCase
	log       *logger.Logger
}

func NewAnalyticsHandler(dashboard *appanalytics.DashboardUseCase, summary *appanalytics.SummaryUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, summary: summary, log: log}
}

// Dashboard godoc
// @Summary      Tablero del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de utilización
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "WEEK | MONTH | QUARTER | YEAR"  default(MONTH)
// @Success      200     {object}  dto.ReportDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	period, err := appanalytics.ParsePeriod(q.Period)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.dashboard.Report(c.UserContext(), period)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// FinanceSummary GET /api/finance/summary
func (h *AnalyticsHandler) FinanceSummary(c *fiber.Ctx) error {
	out, err := h.summary.Finance(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// BookingSummary GET /api/bookings/summary
func (h *AnalyticsHandler) BookingSummary(c *fiber.Ctx) error {
	out, err := h.summary.Bookings(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// HRSummary GET /api/employees/summary
func (h *AnalyticsHandler) HRSummary(c *fiber.Ctx) error {
	out, err := h.summary.HR(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
