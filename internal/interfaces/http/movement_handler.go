package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// MovementHandler despachos, devoluciones y nota de despacho en PDF.
type MovementHandler struct {
	uc      *ledger.UseCase
	exports *export.UseCase
	log     *logger.Logger
}

func NewMovementHandler(uc *ledger.UseCase, exports *export.UseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, exports: exports, log: log}
}

// CreateDispatch godoc
// @Summary      Registrar despacho
// @Description  Todo o nada: si una línea supera el stock disponible no se modifica nada (409).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDispatchRequest  true  "Despacho"
// @Success      201   {object}  dto.CreateDispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) CreateDispatch(c *fiber.Ctx) error {
	var in dto.CreateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.uc.CreateDispatchFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateDispatchResponse{MovementID: id})
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        store    query  string  false  "BOBA | MIKOCHENI"
// @Param        status   query  string  false  "OUT | PARTIAL_RETURN | RETURNED"
// @Param        search   query  string  false  "Cliente, responsable o lugar"
// @Param        overdue  query  bool    false  "Solo vencidos"
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// GetByID godoc
// @Summary      Detalle de movimiento con devoluciones
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegisterReturn godoc
// @Summary      Registrar devolución
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.RegisterReturnRequest  true  "Líneas devueltas"
// @Success      201   {object}  dto.RegisterReturnResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/returns [post]
func (h *MovementHandler) RegisterReturn(c *fiber.Ctx) error {
	var in dto.RegisterReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterReturnFromRequest(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReturns godoc
// @Summary      Devoluciones de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Router       /api/movements/{id}/returns [get]
func (h *MovementHandler) ListReturns(c *fiber.Ctx) error {
	out, err := h.uc.ListReturns(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// DispatchNotePDF godoc
// @Summary      Nota de despacho en PDF
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Router       /api/movements/{id}/pdf [get]
func (h *MovementHandler) DispatchNotePDF(c *fiber.Ctx) error {
	pdf, name, err := h.exports.DispatchNotePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, pdf, name, mimePDF)
}

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// sendFile responde un archivo generado como adjunto.
func sendFile(c *fiber.Ctx, body []byte, name, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}
