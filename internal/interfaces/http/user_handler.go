package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// UserHandler administración de usuarios (manage_users).
type UserHandler struct {
	*resourceHandler[dto.CreateUserRequest, dto.UpdateUserRequest, dto.UserListQuery, dto.UserResponse]
	uc *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{resourceHandler: newResourceHandler(userCRUD{uc}, log), uc: uc}
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Un usuario no puede eliminarse a sí mismo (409).
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// userCRUD adapta UserUseCase a crudService; Delete real pasa por UserHandler.Delete.
type userCRUD struct {
	*usecase.UserUseCase
}

func (u userCRUD) Delete(ctx context.Context, id string) error {
	return u.UserUseCase.Delete(ctx, "", id)
}
