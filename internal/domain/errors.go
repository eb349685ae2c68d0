package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de regla de negocio se distinguen de los fallos de
// infraestructura: cualquier otro error no nulo devuelto por un puerto
// de persistencia es un fallo del almacén.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Subsistema de colas.
	ErrYaEncolado   = errors.New("el usuario ya está encolado en el establecimiento")
	ErrNoEncolado   = errors.New("el usuario no está encolado en el establecimiento")
	ErrColaVacia    = errors.New("la cola del establecimiento está vacía")
	ErrEntradaAjena = errors.New("la entrada pertenece a otro establecimiento")
)
