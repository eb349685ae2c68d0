package postgres

import (
	"context"
	"fmt"

	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
)

var _ repository.FavoritoRepository = (*FavoritoRepo)(nil)

// FavoritoRepo implementación de FavoritoRepository sobre PostgreSQL.
type FavoritoRepo struct {
	q Querier
}

// NewFavoritoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFavoritoRepository(q Querier) *FavoritoRepo {
	return &FavoritoRepo{q: q}
}

// Marcar crea la marca de favorito. El par (usuario, establecimiento) es único.
func (r *FavoritoRepo) Marcar(f *entity.EstablecimientoFavorito) error {
	query := `
		INSERT INTO establecimientos_favoritos (id, usuario_id, establecimiento_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.UsuarioID, f.EstablecimientoID, f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert favorito: %w", err)
	}
	return nil
}

// Desmarcar elimina la marca de favorito.
func (r *FavoritoRepo) Desmarcar(usuarioID, establecimientoID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM establecimientos_favoritos WHERE usuario_id = $1 AND establecimiento_id = $2`,
		usuarioID, establecimientoID)
	if err != nil {
		return fmt.Errorf("delete favorito: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListarPorUsuario devuelve los establecimientos favoritos del usuario.
func (r *FavoritoRepo) ListarPorUsuario(usuarioID string) ([]*entity.Establecimiento, error) {
	query := `
		SELECT ` + establecimientoColumnsFav + ` FROM establecimientos e
		JOIN establecimientos_favoritos f ON f.establecimiento_id = e.id
		WHERE f.usuario_id = $1 AND e.deleted_at IS NULL
		ORDER BY f.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("listar favoritos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Establecimiento
	for rows.Next() {
		e, err := scanEstablecimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorito: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

const establecimientoColumnsFav = `e.id, e.nombre, e.direccion, e.descripcion, e.logo, e.usuario_administrador, e.latitud, e.longitud, e.created_at, e.updated_at`
