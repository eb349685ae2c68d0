package cola

import "github.com/jcolmenar/colavirtual-api/internal/domain/entity"

// Autorizador decide si una identidad administra la cola de un
// establecimiento. Es una comprobación sí/no de propósito único; cualquier
// motor de reglas más rico queda fuera de este núcleo.
type Autorizador interface {
	// PuedeAdministrar devuelve true si el usuario es el administrador del
	// establecimiento. Un error es un fallo de infraestructura, no un "no".
	PuedeAdministrar(usuarioID, establecimientoID string) (bool, error)
}

// TurnoPublisher emite el evento de dominio "paso de turno" para consumidores
// externos de notificación. La mecánica de entrega no es parte del núcleo.
type TurnoPublisher interface {
	PublicarPasoTurno(establecimientoID string, entrada *entity.UsuarioEnCola) error
}
