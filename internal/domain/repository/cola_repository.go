package repository

import (
	"time"

	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
)

// ColaRepository define el puerto de persistencia de las entradas en cola.
//
// Las mutaciones son escrituras condicionales de una sola sentencia: el
// almacén es la autoridad sobre los invariantes (exclusividad de entrada
// activa por usuario+establecimiento, orden FIFO) incluso bajo concurrencia.
type ColaRepository interface {
	// EstaEncolado responde si el usuario tiene una entrada activa en la cola
	// del establecimiento (guard de pertenencia, sin efectos). Un error es un
	// fallo de infraestructura, nunca debe confundirse con false.
	EstaEncolado(usuarioID, establecimientoID string) (bool, error)

	// Crear persiste una nueva entrada activa. Devuelve domain.ErrYaEncolado
	// si el índice de exclusividad rechaza un duplicado activo del mismo
	// usuario en el mismo establecimiento.
	Crear(entrada *entity.UsuarioEnCola) error

	// BuscarPorID devuelve la entrada o nil si no existe.
	BuscarPorID(id string) (*entity.UsuarioEnCola, error)

	// DesactivarPorUsuario desactiva la entrada activa del usuario en el
	// establecimiento. Devuelve la entrada actualizada o domain.ErrNoEncolado
	// si no había entrada activa.
	DesactivarPorUsuario(usuarioID, establecimientoID string) (*entity.UsuarioEnCola, error)

	// DesactivarAnonimo desactiva la entrada anónima identificada por su ID
	// (token de capacidad) acotada al establecimiento. Devuelve
	// domain.ErrNotFound si no hay fila que case: ID inexistente, otro
	// establecimiento o entrada de usuario registrado.
	DesactivarAnonimo(entradaID, establecimientoID string) (*entity.UsuarioEnCola, error)

	// DesactivarPorID desactiva la entrada si sigue activa, sea de quien sea.
	// Devuelve domain.ErrNoEncolado si ya no estaba activa.
	DesactivarPorID(entradaID string) (*entity.UsuarioEnCola, error)

	// DesencolarPrimero desactiva y devuelve la entrada activa más antigua
	// del establecimiento (menor momento_estimado, empates por ID). Dos
	// llamadas concurrentes nunca devuelven la misma entrada. Devuelve
	// domain.ErrColaVacia si no hay entradas activas.
	DesencolarPrimero(establecimientoID string) (*entity.UsuarioEnCola, error)

	// ListarActivos devuelve las entradas activas del establecimiento en
	// orden FIFO.
	ListarActivos(establecimientoID string) ([]*entity.UsuarioEnCola, error)

	// MarcarTombstones fija deleted_at en las entradas inactivas anteriores a
	// limite que aún no lo tienen. Solo la usa la purga fuera de banda.
	MarcarTombstones(limite time.Time) (int64, error)

	// BorrarTombstones elimina físicamente las entradas con deleted_at
	// anterior a limite. Solo la usa la purga fuera de banda.
	BorrarTombstones(limite time.Time) (int64, error)
}
