package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.EstablecimientoRepository = (*EstablecimientoRepo)(nil)

// EstablecimientoRepo implementación de EstablecimientoRepository sobre PostgreSQL.
type EstablecimientoRepo struct {
	q Querier
}

// NewEstablecimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstablecimientoRepository(q Querier) *EstablecimientoRepo {
	return &EstablecimientoRepo{q: q}
}

const establecimientoColumns = `id, nombre, direccion, descripcion, logo, usuario_administrador, latitud, longitud, created_at, updated_at`

// Crear persiste un nuevo establecimiento.
func (r *EstablecimientoRepo) Crear(e *entity.Establecimiento) error {
	query := `
		INSERT INTO establecimientos (id, nombre, direccion, descripcion, logo, usuario_administrador, latitud, longitud, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Nombre, e.Direccion, e.Descripcion, e.Logo, e.UsuarioAdministrador,
		e.Latitud, e.Longitud, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert establecimiento: %w", err)
	}
	return nil
}

// BuscarPorID obtiene un establecimiento por ID, o nil si no existe.
func (r *EstablecimientoRepo) BuscarPorID(id string) (*entity.Establecimiento, error) {
	query := `SELECT ` + establecimientoColumns + ` FROM establecimientos WHERE id = $1 AND deleted_at IS NULL`
	e, err := scanEstablecimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get establecimiento: %w", err)
	}
	return e, nil
}

// ListarPorAdministrador lista los establecimientos administrados por el usuario.
func (r *EstablecimientoRepo) ListarPorAdministrador(usuarioID string) ([]*entity.Establecimiento, error) {
	query := `
		SELECT ` + establecimientoColumns + ` FROM establecimientos
		WHERE usuario_administrador = $1 AND deleted_at IS NULL ORDER BY nombre`
	return r.queryList(query, usuarioID)
}

// Buscar devuelve los establecimientos cuyo nombre, dirección o descripción
// contengan la cadena, con paginación.
func (r *EstablecimientoRepo) Buscar(cadena string, limit, offset int) ([]*entity.Establecimiento, error) {
	query := `
		SELECT ` + establecimientoColumns + ` FROM establecimientos
		WHERE (nombre ILIKE '%' || $1 || '%' OR direccion ILIKE '%' || $1 || '%' OR descripcion ILIKE '%' || $1 || '%')
		AND deleted_at IS NULL
		ORDER BY nombre LIMIT $2 OFFSET $3`
	return r.queryList(query, cadena, limit, offset)
}

// BuscarCercanos devuelve los establecimientos geolocalizados a menos de
// radioKm kilómetros del punto, ordenados por distancia (fórmula de Haversine
// sobre radio terrestre de 6371 km).
func (r *EstablecimientoRepo) BuscarCercanos(latitud, longitud decimal.Decimal, radioKm float64) ([]*entity.Establecimiento, error) {
	query := `
		SELECT ` + establecimientoColumns + ` FROM (
			SELECT *,
				(6371 * acos(
					cos(radians($1::numeric)) * cos(radians(latitud)) * cos(radians(longitud) - radians($2::numeric))
					+ sin(radians($1::numeric)) * sin(radians(latitud))
				)) AS distancia
			FROM establecimientos
			WHERE latitud IS NOT NULL AND longitud IS NOT NULL AND deleted_at IS NULL
		) cercanos
		WHERE distancia < $3
		ORDER BY distancia`
	return r.queryList(query, latitud, longitud, radioKm)
}

// Actualizar actualiza un establecimiento.
func (r *EstablecimientoRepo) Actualizar(e *entity.Establecimiento) error {
	query := `
		UPDATE establecimientos
		SET nombre = $2, direccion = $3, descripcion = $4, logo = $5, latitud = $6, longitud = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Nombre, e.Direccion, e.Descripcion, e.Logo, e.Latitud, e.Longitud, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update establecimiento: %w", err)
	}
	return nil
}

// Borrar marca el establecimiento como borrado (soft delete).
func (r *EstablecimientoRepo) Borrar(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE establecimientos SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete establecimiento: %w", err)
	}
	return nil
}

func (r *EstablecimientoRepo) queryList(query string, args ...any) ([]*entity.Establecimiento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list establecimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Establecimiento
	for rows.Next() {
		e, err := scanEstablecimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan establecimiento: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEstablecimiento(row pgx.Row) (*entity.Establecimiento, error) {
	var e entity.Establecimiento
	var direccion, descripcion, logo *string
	err := row.Scan(
		&e.ID, &e.Nombre, &direccion, &descripcion, &logo, &e.UsuarioAdministrador,
		&e.Latitud, &e.Longitud, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if direccion != nil {
		e.Direccion = *direccion
	}
	if descripcion != nil {
		e.Descripcion = *descripcion
	}
	if logo != nil {
		e.Logo = *logo
	}
	return &e, nil
}
