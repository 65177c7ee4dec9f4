package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

// crudService lo cumplen los casos de uso de back-office (empleados, facturas, transacciones, reservas).
type crudService[C, U, Q, R any] interface {
	Create(ctx context.Context, in C) (*R, error)
	GetByID(ctx context.Context, id string) (*R, error)
	Update(ctx context.Context, id string, in U) (*R, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q Q) ([]R, error)
}

// resourceHandler CRUD JSON uniforme: POST 201, GET, PATCH parcial, DELETE 204, listado con filtros por query.
type resourceHandler[C, U, Q, R any] struct {
	svc crudService[C, U, Q, R]
	log *logger.Logger
}

func newResourceHandler[C, U, Q, R any](svc crudService[C, U, Q, R], log *logger.Logger) *resourceHandler[C, U, Q, R] {
	return &resourceHandler[C, U, Q, R]{svc: svc, log: log}
}

func (h *resourceHandler[C, U, Q, R]) Create(c *fiber.Ctx) error {
	var in C
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *resourceHandler[C, U, Q, R]) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *resourceHandler[C, U, Q, R]) Update(c *fiber.Ctx) error {
	var in U
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *resourceHandler[C, U, Q, R]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *resourceHandler[C, U, Q, R]) List(c *fiber.Ctx) error {
	var q Q
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.svc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}
