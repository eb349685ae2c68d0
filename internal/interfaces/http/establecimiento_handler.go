package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/application/usecase"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EstablecimientoHandler maneja las peticiones HTTP de establecimientos.
type EstablecimientoHandler struct {
	uc *usecase.EstablecimientoUseCase
}

// NewEstablecimientoHandler construye el handler.
func NewEstablecimientoHandler(uc *usecase.EstablecimientoUseCase) *EstablecimientoHandler {
	return &EstablecimientoHandler{uc: uc}
}

// Create POST /api/establecimientos (protegido, el creador queda como administrador)
func (h *EstablecimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEstablecimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	est, err := h.uc.Crear(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(est)
}

// Show GET /api/establecimientos/:id (público)
func (h *EstablecimientoHandler) Show(c *fiber.Ctx) error {
	est, err := h.uc.BuscarPorID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if est == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
	}
	return c.JSON(est)
}

// Mine GET /api/establecimientos/mios (protegido)
func (h *EstablecimientoHandler) Mine(c *fiber.Ctx) error {
	list, err := h.uc.MisEstablecimientos(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Search GET /api/establecimientos/buscar?cadena=...&limit=20&offset=0 (público)
func (h *EstablecimientoHandler) Search(c *fiber.Ctx) error {
	var in dto.BuscarEstablecimientoRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.Cadena = c.Query("cadena")
	in.DefaultPage()
	list, err := h.uc.Buscar(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Nearby GET /api/establecimientos/cercanos?latitud=...&longitud=... (público)
func (h *EstablecimientoHandler) Nearby(c *fiber.Ctx) error {
	lat, errLat := decimal.NewFromString(c.Query("latitud"))
	lon, errLon := decimal.NewFromString(c.Query("longitud"))
	if errLat != nil || errLon != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "latitud y longitud son requeridas"})
	}
	list, err := h.uc.BuscarCercanos(dto.BuscarCercanosRequest{Latitud: lat, Longitud: lon})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Update PUT /api/establecimientos/:id (protegido, solo el administrador)
func (h *EstablecimientoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEstablecimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	est, err := h.uc.Actualizar(GetUserID(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el administrador puede modificarlo"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(est)
}

// Delete DELETE /api/establecimientos/:id (protegido, solo el administrador)
func (h *EstablecimientoHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Borrar(GetUserID(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "establecimiento no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el administrador puede borrarlo"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
