package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// EmployeeHandler fichas de empleados.
type EmployeeHandler = resourceHandler[dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest, dto.EmployeeListQuery, dto.EmployeeResponse]

func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log *logger.Logger) *EmployeeHandler {
	return newResourceHandler[dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest, dto.EmployeeListQuery, dto.EmployeeResponse](uc, log)
}

// TransactionHandler ingresos y egresos.
type TransactionHandler = resourceHandler[dto.CreateTransactionRequest, dto.UpdateTransactionRequest, dto.TransactionListQuery, dto.TransactionResponse]

func NewTransactionHandler(uc *usecase.TransactionUseCase, log *logger.Logger) *TransactionHandler {
	return newResourceHandler[dto.CreateTransactionRequest, dto.UpdateTransactionRequest, dto.TransactionListQuery, dto.TransactionResponse](uc, log)
}

// BookingHandler reservas de eventos.
type BookingHandler = resourceHandler[dto.CreateBookingRequest, dto.UpdateBookingRequest, dto.BookingListQuery, dto.BookingResponse]

func NewBookingHandler(uc *usecase.BookingUseCase, log *logger.Logger) *BookingHandler {
	return newResourceHandler[dto.CreateBookingRequest, dto.UpdateBookingRequest, dto.BookingListQuery, dto.BookingResponse](uc, log)
}

// InvoiceHandler facturas y su PDF.
type InvoiceHandler struct {
	*resourceHandler[dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest, dto.InvoiceListQuery, dto.InvoiceResponse]
	exports *export.UseCase
}

func NewInvoiceHandler(uc *usecase.InvoiceUseCase, exports *export.UseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		resourceHandler: newResourceHandler[dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest, dto.InvoiceListQuery, dto.InvoiceResponse](uc, log),
		exports:         exports,
	}
}

// PDF godoc
// @Summary      Factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, name, err := h.exports.InvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, pdf, name, mimePDF)
}
