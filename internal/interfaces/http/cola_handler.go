package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcolmenar/colavirtual-api/internal/application/cola"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
)

// Cookie donde se echa al invitado su token de capacidad tras el alta.
const cookieUsuarioAnonimo = "usuarioAnonimoID"

// ColaHandler maneja las peticiones HTTP del subsistema de colas.
//
// Todas las respuestas usan la envoltura {code, data}: code 0 es éxito y los
// códigos negativos identifican el fallo concreto; el status HTTP acompaña
// (200 éxito, 400 regla de negocio, 403 autorización, 422 validación,
// 500 fallo del almacén).
type ColaHandler struct {
	uc  *cola.ColaUseCase
	log *logger.Logger
}

// NewColaHandler construye el handler.
func NewColaHandler(uc *cola.ColaUseCase, log *logger.Logger) *ColaHandler {
	return &ColaHandler{uc: uc, log: log}
}

// Códigos de la envoltura de respuesta del subsistema de colas.
const (
	codeOK           = 0
	codeUnauthorized = -10 // el llamante no administra el establecimiento
	codePersistencia = -11 // fallo del almacén
	codeReglaNegocio = -12 // ya encolado / no encolado / cola vacía / no encontrado
	codeEntradaAjena = -13 // la entrada pertenece a otro establecimiento
	codeValidacion   = -14 // entrada de la petición inválida
)

// Apuntarse POST /api/establecimientos/:id/apuntarse
//
//	 0: OK
//	-11: fallo del almacén
//	-12: el usuario ya estaba encolado de forma activa en el establecimiento
func (h *ColaHandler) Apuntarse(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	establecimientoID := c.Params("id")

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("establecimiento_id", establecimientoID).
		Msg("entrando a apuntarse")

	entrada, err := h.uc.ApuntarUsuario(usuarioID, establecimientoID)
	if err != nil {
		return h.responderError(c, err, "apuntarse")
	}

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de apuntarse")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// Desapuntarse POST /api/establecimientos/:id/desapuntarse
//
//	 0: OK
//	-11: fallo del almacén
//	-12: el usuario no estaba encolado, no hay nada que desapuntar
func (h *ColaHandler) Desapuntarse(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	establecimientoID := c.Params("id")

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("establecimiento_id", establecimientoID).
		Msg("entrando a desapuntarse")

	entrada, err := h.uc.DesapuntarUsuario(usuarioID, establecimientoID)
	if err != nil {
		return h.responderError(c, err, "desapuntarse")
	}

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de desapuntarse")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// ApuntarseComoInvitado POST /api/establecimientos/:id/apuntarse-como-invitado
//
// El ID de la entrada devuelta es el token de capacidad del invitado; se echa
// también como cookie para clientes de navegador.
//
//	 0: OK
//	-11: fallo del almacén
//	-14: nombre de invitado inválido (vacío o de más de 100 caracteres)
func (h *ColaHandler) ApuntarseComoInvitado(c *fiber.Ctx) error {
	establecimientoID := c.Params("id")

	var in dto.ApuntarseComoInvitadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ApiResponse{Code: codeValidacion, Data: "cuerpo inválido"})
	}

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("nombre", in.NombreUsuarioAnonimo).
		Msg("entrando a apuntarse como invitado")

	entrada, err := h.uc.ApuntarInvitado(in.NombreUsuarioAnonimo, establecimientoID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ApiResponse{Code: codeValidacion, Data: "debes especificar un nombre de usuario de hasta 100 caracteres"})
		}
		return h.responderError(c, err, "apuntarse como invitado")
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieUsuarioAnonimo,
		Value:    entrada.ID,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de apuntarse como invitado")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// DesapuntarseComoInvitado POST /api/establecimientos/:id/desapuntarse-como-invitado
//
// El token de capacidad llega en el cuerpo o, en su defecto, en la cookie.
//
//	 0: OK
//	-11: fallo del almacén
//	-12: no hay entrada anónima que case con el token en ese establecimiento
func (h *ColaHandler) DesapuntarseComoInvitado(c *fiber.Ctx) error {
	establecimientoID := c.Params("id")

	var in dto.DesapuntarseComoInvitadoRequest
	_ = c.BodyParser(&in)
	if in.EntradaID == "" {
		in.EntradaID = c.Cookies(cookieUsuarioAnonimo)
	}
	if in.EntradaID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ApiResponse{Code: codeValidacion, Data: "falta el identificador de la entrada"})
	}

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", in.EntradaID).
		Msg("entrando a desapuntarse como invitado")

	entrada, err := h.uc.DesapuntarInvitado(in.EntradaID, establecimientoID)
	if err != nil {
		return h.responderError(c, err, "desapuntarse como invitado")
	}

	c.ClearCookie(cookieUsuarioAnonimo)

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de desapuntarse como invitado")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// AdminPasaTurno GET /api/establecimientos/:id/pasar-turno
//
//	 0: OK, devuelve la entrada desencolada
//	-10: el llamante no administra el establecimiento
//	-11: fallo del almacén
//	-12: la cola está vacía, no hay turno que pasar
func (h *ColaHandler) AdminPasaTurno(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	establecimientoID := c.Params("id")

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("establecimiento_id", establecimientoID).
		Msg("entrando a pasar turno")

	entrada, err := h.uc.AdminPasaTurno(establecimientoID, usuarioID)
	if err != nil {
		return h.responderError(c, err, "pasar turno")
	}

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de pasar turno")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// AdminDesapunta GET /api/establecimientos/:id/admin-desapunta-usuario/:entradaId
//
//	 0: OK
//	-10: el llamante no administra el establecimiento
//	-11: fallo del almacén
//	-12: la entrada no existe o ya no está activa
//	-13: la entrada pertenece a otro establecimiento
func (h *ColaHandler) AdminDesapunta(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	establecimientoID := c.Params("id")
	entradaID := c.Params("entradaId")

	h.log.Debug().
		Str("usuario_id", usuarioID).
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", entradaID).
		Msg("entrando a admin desapunta")

	entrada, err := h.uc.AdminDesapunta(entradaID, usuarioID, establecimientoID)
	if err != nil {
		return h.responderError(c, err, "admin desapunta")
	}

	h.log.Debug().
		Str("establecimiento_id", establecimientoID).
		Str("entrada_id", entrada.ID).
		Msg("saliendo de admin desapunta")
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entrada})
}

// ListarCola GET /api/establecimientos/:id/cola
//
// Listado de solo lectura de las entradas activas en orden FIFO.
func (h *ColaHandler) ListarCola(c *fiber.Ctx) error {
	establecimientoID := c.Params("id")
	entradas, err := h.uc.ListarCola(establecimientoID)
	if err != nil {
		return h.responderError(c, err, "listar cola")
	}
	return c.JSON(dto.ApiResponse{Code: codeOK, Data: entradas})
}

// responderError traduce el error de dominio a la envoltura {code, data}.
// Los fallos del almacén se registran con el contexto completo de la
// petición; los errores de regla de negocio son resultados esperados y solo
// se devuelven.
func (h *ColaHandler) responderError(c *fiber.Ctx, err error, operacion string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ApiResponse{Code: codeUnauthorized, Data: "no autorizado"})
	case errors.Is(err, domain.ErrYaEncolado),
		errors.Is(err, domain.ErrNoEncolado),
		errors.Is(err, domain.ErrColaVacia),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ApiResponse{Code: codeReglaNegocio, Data: err.Error()})
	case errors.Is(err, domain.ErrEntradaAjena):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ApiResponse{Code: codeEntradaAjena, Data: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ApiResponse{Code: codeValidacion, Data: err.Error()})
	default:
		h.log.Error().Err(err).
			Str("operacion", operacion).
			Str("usuario_id", GetUserID(c)).
			Str("path", c.Path()).
			Msg("fallo de persistencia en operación de cola")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ApiResponse{Code: codePersistencia, Data: "error interno"})
	}
}
