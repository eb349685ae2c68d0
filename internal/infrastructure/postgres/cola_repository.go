package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
)

var _ repository.ColaRepository = (*ColaRepo)(nil)

// ColaRepo implementación de ColaRepository sobre PostgreSQL (usable con pool o tx).
//
// Los invariantes de la cola viven en el esquema: el índice único parcial
// sobre (establecimiento_id, usuario_id) WHERE activo impide dos entradas
// activas del mismo usuario, y el desencolado es una única sentencia con
// FOR UPDATE SKIP LOCKED, de modo que dos pasos de turno concurrentes nunca
// devuelven la misma fila.
type ColaRepo struct {
	q Querier
}

// NewColaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewColaRepository(q Querier) *ColaRepo {
	return &ColaRepo{q: q}
}

const colaColumns = `id, establecimiento_id, usuario_id, nombre_anonimo, momento_estimado, aplazada, activo, created_at, updated_at, deleted_at`

// EstaEncolado responde si el usuario tiene una entrada activa en la cola del
// establecimiento. Sin efectos; un error es un fallo del almacén.
func (r *ColaRepo) EstaEncolado(usuarioID, establecimientoID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM usuarios_en_cola
			WHERE usuario_id = $1 AND establecimiento_id = $2 AND activo AND deleted_at IS NULL
		)`
	var existe bool
	err := r.q.QueryRow(context.Background(), query, usuarioID, establecimientoID).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("comprobar usuario en cola: %w", err)
	}
	return existe, nil
}

// Crear persiste una nueva entrada. El índice único parcial convierte el
// duplicado activo de usuario+establecimiento en ErrYaEncolado.
func (r *ColaRepo) Crear(entrada *entity.UsuarioEnCola) error {
	query := `
		INSERT INTO usuarios_en_cola (id, establecimiento_id, usuario_id, nombre_anonimo, momento_estimado, aplazada, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entrada.ID, entrada.EstablecimientoID, entrada.UsuarioID, nullIfEmpty(entrada.NombreAnonimo),
		entrada.MomentoEstimado, entrada.Aplazada, entrada.Activo, entrada.CreatedAt, entrada.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrYaEncolado
		}
		return fmt.Errorf("insert usuario en cola: %w", err)
	}
	return nil
}

// BuscarPorID obtiene una entrada por ID, o nil si no existe.
func (r *ColaRepo) BuscarPorID(id string) (*entity.UsuarioEnCola, error) {
	query := `SELECT ` + colaColumns + ` FROM usuarios_en_cola WHERE id = $1 AND deleted_at IS NULL`
	entrada, err := scanEntrada(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario en cola: %w", err)
	}
	return entrada, nil
}

// DesactivarPorUsuario desactiva la entrada activa del usuario en el
// establecimiento en una sola sentencia condicional: cero filas afectadas
// significa que no estaba encolado, también bajo carreras.
func (r *ColaRepo) DesactivarPorUsuario(usuarioID, establecimientoID string) (*entity.UsuarioEnCola, error) {
	query := `
		UPDATE usuarios_en_cola SET activo = false, updated_at = now()
		WHERE usuario_id = $1 AND establecimiento_id = $2 AND activo AND deleted_at IS NULL
		RETURNING ` + colaColumns
	entrada, err := scanEntrada(r.q.QueryRow(context.Background(), query, usuarioID, establecimientoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoEncolado
		}
		return nil, fmt.Errorf("desactivar entrada de usuario: %w", err)
	}
	return entrada, nil
}

// DesactivarAnonimo desactiva la entrada anónima referida por su ID acotada
// al establecimiento. El filtro usuario_id IS NULL impide usar el token para
// tocar entradas de usuarios registrados.
func (r *ColaRepo) DesactivarAnonimo(entradaID, establecimientoID string) (*entity.UsuarioEnCola, error) {
	query := `
		UPDATE usuarios_en_cola SET activo = false, updated_at = now()
		WHERE id = $1 AND establecimiento_id = $2 AND usuario_id IS NULL AND activo AND deleted_at IS NULL
		RETURNING ` + colaColumns
	entrada, err := scanEntrada(r.q.QueryRow(context.Background(), query, entradaID, establecimientoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("desactivar entrada anónima: %w", err)
	}
	return entrada, nil
}

// DesactivarPorID desactiva la entrada si sigue activa.
func (r *ColaRepo) DesactivarPorID(entradaID string) (*entity.UsuarioEnCola, error) {
	query := `
		UPDATE usuarios_en_cola SET activo = false, updated_at = now()
		WHERE id = $1 AND activo AND deleted_at IS NULL
		RETURNING ` + colaColumns
	entrada, err := scanEntrada(r.q.QueryRow(context.Background(), query, entradaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoEncolado
		}
		return nil, fmt.Errorf("desactivar entrada: %w", err)
	}
	return entrada, nil
}

// DesencolarPrimero desactiva y devuelve la entrada activa más antigua del
// establecimiento. El subselect con FOR UPDATE SKIP LOCKED serializa los
// pasos de turno concurrentes sin bloquear el resto de la cola.
func (r *ColaRepo) DesencolarPrimero(establecimientoID string) (*entity.UsuarioEnCola, error) {
	query := `
		UPDATE usuarios_en_cola SET activo = false, updated_at = now()
		WHERE id = (
			SELECT id FROM usuarios_en_cola
			WHERE establecimiento_id = $1 AND activo AND deleted_at IS NULL
			ORDER BY momento_estimado ASC, id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + colaColumns
	entrada, err := scanEntrada(r.q.QueryRow(context.Background(), query, establecimientoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrColaVacia
		}
		return nil, fmt.Errorf("desencolar primero: %w", err)
	}
	return entrada, nil
}

// ListarActivos devuelve las entradas activas del establecimiento en orden FIFO.
func (r *ColaRepo) ListarActivos(establecimientoID string) ([]*entity.UsuarioEnCola, error) {
	query := `
		SELECT ` + colaColumns + ` FROM usuarios_en_cola
		WHERE establecimiento_id = $1 AND activo AND deleted_at IS NULL
		ORDER BY momento_estimado ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, establecimientoID)
	if err != nil {
		return nil, fmt.Errorf("listar cola: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsuarioEnCola
	for rows.Next() {
		entrada, err := scanEntrada(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		list = append(list, entrada)
	}
	return list, rows.Err()
}

// MarcarTombstones fija deleted_at en las entradas inactivas anteriores a limite.
func (r *ColaRepo) MarcarTombstones(limite time.Time) (int64, error) {
	query := `
		UPDATE usuarios_en_cola SET deleted_at = now()
		WHERE NOT activo AND deleted_at IS NULL AND updated_at < $1`
	tag, err := r.q.Exec(context.Background(), query, limite)
	if err != nil {
		return 0, fmt.Errorf("marcar tombstones: %w", err)
	}
	return tag.RowsAffected(), nil
}

// BorrarTombstones elimina físicamente las entradas tombstoneadas antes de limite.
func (r *ColaRepo) BorrarTombstones(limite time.Time) (int64, error) {
	query := `DELETE FROM usuarios_en_cola WHERE deleted_at IS NOT NULL AND deleted_at < $1`
	tag, err := r.q.Exec(context.Background(), query, limite)
	if err != nil {
		return 0, fmt.Errorf("borrar tombstones: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanEntrada escanea una fila con colaColumns.
func scanEntrada(row pgx.Row) (*entity.UsuarioEnCola, error) {
	var e entity.UsuarioEnCola
	var nombre *string
	err := row.Scan(
		&e.ID, &e.EstablecimientoID, &e.UsuarioID, &nombre,
		&e.MomentoEstimado, &e.Aplazada, &e.Activo, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if nombre != nil {
		e.NombreAnonimo = *nombre
	}
	return &e, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
