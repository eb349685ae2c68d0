package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
)

// FavoritoUseCase casos de uso de establecimientos favoritos.
type FavoritoUseCase struct {
	repo              repository.FavoritoRepository
	establecimientoRe repository.EstablecimientoRepository
}

// NewFavoritoUseCase construye el caso de uso.
func NewFavoritoUseCase(repo repository.FavoritoRepository, establecimientoRe repository.EstablecimientoRepository) *FavoritoUseCase {
	return &FavoritoUseCase{repo: repo, establecimientoRe: establecimientoRe}
}

// Marcar marca un establecimiento como favorito del usuario. Devuelve
// ErrNotFound si el establecimiento no existe y ErrDuplicate si ya estaba
// marcado.
func (uc *FavoritoUseCase) Marcar(usuarioID, establecimientoID string) error {
	establecimiento, err := uc.establecimientoRe.BuscarPorID(establecimientoID)
	if err != nil {
		return err
	}
	if establecimiento == nil {
		return domain.ErrNotFound
	}
	favorito := &entity.EstablecimientoFavorito{
		ID:                uuid.New().String(),
		UsuarioID:         usuarioID,
		EstablecimientoID: establecimientoID,
		CreatedAt:         time.Now(),
	}
	return uc.repo.Marcar(favorito)
}

// Desmarcar quita la marca de favorito. Devuelve ErrNotFound si no existía.
func (uc *FavoritoUseCase) Desmarcar(usuarioID, establecimientoID string) error {
	return uc.repo.Desmarcar(usuarioID, establecimientoID)
}

// Listar devuelve los establecimientos favoritos del usuario.
func (uc *FavoritoUseCase) Listar(usuarioID string) ([]*dto.EstablecimientoResponse, error) {
	list, err := uc.repo.ListarPorUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	return toEstablecimientoResponses(list), nil
}
