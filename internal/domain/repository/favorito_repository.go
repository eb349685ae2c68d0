package repository

import "github.com/jcolmenar/colavirtual-api/internal/domain/entity"

// FavoritoRepository define el puerto de persistencia para favoritos.
type FavoritoRepository interface {
	// Marcar crea la marca de favorito. Devuelve domain.ErrDuplicate si el
	// usuario ya tenía marcado el establecimiento.
	Marcar(favorito *entity.EstablecimientoFavorito) error
	// Desmarcar elimina la marca. Devuelve domain.ErrNotFound si no existía.
	Desmarcar(usuarioID, establecimientoID string) error
	// ListarPorUsuario devuelve los establecimientos favoritos del usuario.
	ListarPorUsuario(usuarioID string) ([]*entity.Establecimiento, error)
}
