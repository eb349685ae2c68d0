package entity

import "time"

// UsuarioEnCola representa una entrada en la cola de un establecimiento:
// un intento de encolado de un usuario registrado o de un invitado anónimo.
//
// Exactamente uno de UsuarioID / NombreAnonimo tiene significado por entrada.
// Para un invitado el ID de la entrada es su único medio de referenciarla
// después (token de capacidad): no hay búsqueda por nombre.
//
// Ciclo de vida: creada activa -> desactivada (terminal). Las operaciones de
// cola nunca borran filas; DeletedAt lo fija solo la purga fuera de banda.
type UsuarioEnCola struct {
	ID                string
	EstablecimientoID string
	UsuarioID         *string // nulo para entradas anónimas
	NombreAnonimo     string  // vacío para usuarios registrados
	MomentoEstimado   time.Time // clave de orden FIFO; empates por ID ascendente
	Aplazada          bool
	Activo            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// EsAnonima indica si la entrada pertenece a un invitado sin registrar.
func (u *UsuarioEnCola) EsAnonima() bool {
	return u.UsuarioID == nil
}
