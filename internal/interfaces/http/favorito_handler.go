package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/application/usecase"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
)

// FavoritoHandler maneja el marcado de establecimientos favoritos (protegido).
type FavoritoHandler struct {
	uc *usecase.FavoritoUseCase
}

// NewFavoritoHandler construye el handler.
func NewFavoritoHandler(uc *usecase.FavoritoUseCase) *FavoritoHandler {
	return &FavoritoHandler{uc: uc}
}

// Mark POST /api/establecimientos/:id/favorito
func (h *FavoritoHandler) Mark(c *fiber.Ctx) error {
	err := h.uc.Marcar(GetUserID(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya está marcado como favorito"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Unmark DELETE /api/establecimientos/:id/favorito
func (h *FavoritoHandler) Unmark(c *fiber.Ctx) error {
	err := h.uc.Desmarcar(GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no estaba marcado como favorito"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /api/favoritos
func (h *FavoritoHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.Listar(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
