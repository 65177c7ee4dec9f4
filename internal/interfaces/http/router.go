package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/wegesa-api/internal/application/analytics"
	"github.com/jhoicas/wegesa-api/internal/application/auth"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/internal/domain/rbac"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	LedgerUC      *ledger.UseCase
	UserUC        *usecase.UserUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	InvoiceUC     *usecase.InvoiceUseCase
	TransactionUC *usecase.TransactionUseCase
	BookingUC     *usecase.BookingUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	SummaryUC     *appanalytics.SummaryUseCase
	ExportUC      *export.UseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Artículos
	items := NewItemHandler(deps.LedgerUC, log)
	protected.Get("/items", items.List)
	protected.Post("/items", RequirePermission(rbac.AddItem), items.Create)
	protected.Get("/items/:id", items.GetByID)
	protected.Patch("/items/:id", RequirePermission(rbac.EditItem), items.Update)
	protected.Delete("/items/:id", RequirePermission(rbac.DeleteItem), items.Delete)

	// Movimientos: despachos y devoluciones
	movements := NewMovementHandler(deps.LedgerUC, deps.ExportUC, log)
	protected.Get("/movements", movements.List)
	protected.Post("/movements", RequirePermission(rbac.CreateDispatch), movements.CreateDispatch)
	protected.Get("/movements/:id", movements.GetByID)
	protected.Get("/movements/:id/pdf", movements.DispatchNotePDF)
	protected.Get("/movements/:id/returns", RequirePermission(rbac.ConfirmReturn), movements.ListReturns)
	protected.Post("/movements/:id/returns", RequirePermission(rbac.ConfirmReturn), movements.RegisterReturn)

	// Usuarios
	users := NewUserHandler(deps.UserUC, log)
	usersGroup := protected.Group("/users", RequirePermission(rbac.ManageUsers))
	usersGroup.Get("/", users.List)
	usersGroup.Post("/", users.Create)
	usersGroup.Get("/:id", users.GetByID)
	usersGroup.Patch("/:id", users.Update)
	usersGroup.Delete("/:id", users.Delete)

	analytics := NewAnalyticsHandler(deps.DashboardUC, deps.SummaryUC, log)

	// Empleados
	employees := NewEmployeeHandler(deps.EmployeeUC, log)
	protected.Get("/employees/summary", RequirePermission(rbac.ViewEmployees), analytics.HRSummary)
	protected.Get("/employees", RequirePermission(rbac.ViewEmployees), employees.List)
	protected.Post("/employees", RequirePermission(rbac.AddEmployee), employees.Create)
	protected.Get("/employees/:id", RequirePermission(rbac.ViewEmployees), employees.GetByID)
	protected.Patch("/employees/:id", RequirePermission(rbac.EditEmployee), employees.Update)
	protected.Delete("/employees/:id", RequirePermission(rbac.DeleteEmployee), employees.Delete)

	// Finanzas
	protected.Get("/finance/summary", RequirePermission(rbac.ViewFinance), analytics.FinanceSummary)
	invoices := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC, log)
	protected.Get("/invoices", RequirePermission(rbac.ViewFinance), invoices.List)
	protected.Post("/invoices", RequirePermission(rbac.CreateInvoice), invoices.Create)
	protected.Get("/invoices/:id", RequirePermission(rbac.ViewFinance), invoices.GetByID)
	protected.Get("/invoices/:id/pdf", RequirePermission(rbac.ViewFinance), invoices.PDF)
	protected.Patch("/invoices/:id", RequirePermission(rbac.EditInvoice), invoices.Update)
	protected.Delete("/invoices/:id", RequirePermission(rbac.DeleteInvoice), invoices.Delete)

	transactions := NewTransactionHandler(deps.TransactionUC, log)
	protected.Get("/transactions", RequirePermission(rbac.ViewFinance), transactions.List)
	protected.Post("/transactions", RequirePermission(rbac.AddTransaction), transactions.Create)
	protected.Get("/transactions/:id", RequirePermission(rbac.ViewFinance), transactions.GetByID)
	protected.Patch("/transactions/:id", RequirePermission(rbac.EditTransaction), transactions.Update)
	protected.Delete("/transactions/:id", RequirePermission(rbac.DeleteTransaction), transactions.Delete)

	// Reservas
	bookings := NewBookingHandler(deps.BookingUC, log)
	protected.Get("/bookings/summary", RequirePermission(rbac.ViewBookings), analytics.BookingSummary)
	protected.Get("/bookings", RequirePermission(rbac.ViewBookings), bookings.List)
	protected.Post("/bookings", RequirePermission(rbac.CreateBooking), bookings.Create)
	protected.Get("/bookings/:id", RequirePermission(rbac.ViewBookings), bookings.GetByID)
	protected.Patch("/bookings/:id", RequirePermission(rbac.EditBooking), bookings.Update)
	protected.Delete("/bookings/:id", RequirePermission(rbac.DeleteBooking), bookings.Delete)

	// Reportes y exportaciones
	protected.Get("/dashboard", RequirePermission(rbac.ViewReports), analytics.Dashboard)
	protected.Get("/reports", RequirePermission(rbac.ViewReports), analytics.Report)
	exports := NewExportHandler(deps.ExportUC, log)
	protected.Get("/exports/:dataset", RequirePermission(rbac.ViewReports), exports.Spreadsheet)
}
