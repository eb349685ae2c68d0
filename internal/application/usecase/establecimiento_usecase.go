package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Radio de búsqueda de establecimientos cercanos, en kilómetros.
const radioCercanosKm = 10

// EstablecimientoUseCase aplica reglas de negocio para establecimientos.
type EstablecimientoUseCase struct {
	repo repository.EstablecimientoRepository
}

// NewEstablecimientoUseCase construye el caso de uso con el puerto de persistencia.
func NewEstablecimientoUseCase(repo repository.EstablecimientoRepository) *EstablecimientoUseCase {
	return &EstablecimientoUseCase{repo: repo}
}

// Crear crea un establecimiento; el usuario creador queda como administrador.
func (uc *EstablecimientoUseCase) Crear(usuarioID string, in dto.CreateEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	establecimiento := &entity.Establecimiento{
		ID:                   uuid.New().String(),
		Nombre:               in.Nombre,
		Direccion:            in.Direccion,
		Descripcion:          in.Descripcion,
		UsuarioAdministrador: usuarioID,
		Latitud:              toNullDecimal(in.Latitud),
		Longitud:             toNullDecimal(in.Longitud),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Crear(establecimiento); err != nil {
		return nil, err
	}
	return toEstablecimientoResponse(establecimiento), nil
}

// BuscarPorID obtiene un establecimiento por ID, o nil si no existe.
func (uc *EstablecimientoUseCase) BuscarPorID(id string) (*dto.EstablecimientoResponse, error) {
	establecimiento, err := uc.repo.BuscarPorID(id)
	if err != nil {
		return nil, err
	}
	if establecimiento == nil {
		return nil, nil
	}
	return toEstablecimientoResponse(establecimiento), nil
}

// MisEstablecimientos lista los establecimientos administrados por el usuario.
func (uc *EstablecimientoUseCase) MisEstablecimientos(usuarioID string) ([]*dto.EstablecimientoResponse, error) {
	list, err := uc.repo.ListarPorAdministrador(usuarioID)
	if err != nil {
		return nil, err
	}
	return toEstablecimientoResponses(list), nil
}

// Buscar devuelve los establecimientos que casen con la cadena en nombre,
// dirección o descripción.
func (uc *EstablecimientoUseCase) Buscar(in dto.BuscarEstablecimientoRequest) ([]*dto.EstablecimientoResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.Buscar(in.Cadena, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toEstablecimientoResponses(list), nil
}

// BuscarCercanos devuelve los establecimientos geolocalizados a menos de
// 10 km del punto, ordenados por distancia.
func (uc *EstablecimientoUseCase) BuscarCercanos(in dto.BuscarCercanosRequest) ([]*dto.EstablecimientoResponse, error) {
	list, err := uc.repo.BuscarCercanos(in.Latitud, in.Longitud, radioCercanosKm)
	if err != nil {
		return nil, err
	}
	return toEstablecimientoResponses(list), nil
}

// Actualizar modifica un establecimiento propio. Devuelve ErrForbidden si el
// usuario no es su administrador y ErrNotFound si no existe.
func (uc *EstablecimientoUseCase) Actualizar(usuarioID, id string, in dto.UpdateEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	establecimiento, err := uc.repo.BuscarPorID(id)
	if err != nil {
		return nil, err
	}
	if establecimiento == nil {
		return nil, domain.ErrNotFound
	}
	if establecimiento.UsuarioAdministrador != usuarioID {
		return nil, domain.ErrForbidden
	}
	if in.Nombre != "" {
		establecimiento.Nombre = in.Nombre
	}
	if in.Direccion != "" {
		establecimiento.Direccion = in.Direccion
	}
	if in.Descripcion != "" {
		establecimiento.Descripcion = in.Descripcion
	}
	if in.Logo != "" {
		establecimiento.Logo = in.Logo
	}
	if in.Latitud != nil {
		establecimiento.Latitud = toNullDecimal(in.Latitud)
	}
	if in.Longitud != nil {
		establecimiento.Longitud = toNullDecimal(in.Longitud)
	}
	establecimiento.UpdatedAt = time.Now()
	if err := uc.repo.Actualizar(establecimiento); err != nil {
		return nil, err
	}
	return toEstablecimientoResponse(establecimiento), nil
}

// Borrar elimina un establecimiento propio.
func (uc *EstablecimientoUseCase) Borrar(usuarioID, id string) error {
	establecimiento, err := uc.repo.BuscarPorID(id)
	if err != nil {
		return err
	}
	if establecimiento == nil {
		return domain.ErrNotFound
	}
	if establecimiento.UsuarioAdministrador != usuarioID {
		return domain.ErrForbidden
	}
	return uc.repo.Borrar(id)
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toEstablecimientoResponse(e *entity.Establecimiento) *dto.EstablecimientoResponse {
	if e == nil {
		return nil
	}
	return &dto.EstablecimientoResponse{
		ID:                   e.ID,
		Nombre:               e.Nombre,
		Direccion:            e.Direccion,
		Descripcion:          e.Descripcion,
		Logo:                 e.Logo,
		UsuarioAdministrador: e.UsuarioAdministrador,
		Latitud:              fromNullDecimal(e.Latitud),
		Longitud:             fromNullDecimal(e.Longitud),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func toEstablecimientoResponses(list []*entity.Establecimiento) []*dto.EstablecimientoResponse {
	items := make([]*dto.EstablecimientoResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toEstablecimientoResponse(e))
	}
	return items
}
