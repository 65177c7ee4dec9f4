package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/rbac"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// ExportHandler descargas xlsx.
type ExportHandler struct {
	uc  *export.UseCase
	log *logger.Logger
}

func NewExportHandler(uc *export.UseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, log: log}
}

// Spreadsheet godoc
// @Summary      Exportar dataset a xlsx
// @Tags         exports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        dataset  path  string  true  "inventory | movements | invoices | transactions | bookings | employees (con o sin .xlsx)"
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/exports/{dataset} [get]
func (h *ExportHandler) Spreadsheet(c *fiber.Ctx) error {
	dataset, err := export.ParseDataset(c.Params("dataset"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if dataset.Finance() && !rbac.Can(entity.Role(GetRole(c)), rbac.ViewFinance) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso requerido: " + string(rbac.ViewFinance)})
	}
	body, name, err := h.uc.Spreadsheet(c.UserContext(), dataset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, body, name, mimeXLSX)
}
