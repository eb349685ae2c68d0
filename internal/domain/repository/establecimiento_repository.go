package repository

import (
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EstablecimientoRepository define el puerto de persistencia para Establecimiento.
type EstablecimientoRepository interface {
	Crear(establecimiento *entity.Establecimiento) error
	BuscarPorID(id string) (*entity.Establecimiento, error)
	ListarPorAdministrador(usuarioID string) ([]*entity.Establecimiento, error)
	// Buscar devuelve los establecimientos cuyo nombre, dirección o
	// descripción contengan la cadena.
	Buscar(cadena string, limit, offset int) ([]*entity.Establecimiento, error)
	// BuscarCercanos devuelve los establecimientos geolocalizados a menos de
	// radioKm kilómetros del punto, ordenados por distancia.
	BuscarCercanos(latitud, longitud decimal.Decimal, radioKm float64) ([]*entity.Establecimiento, error)
	Actualizar(establecimiento *entity.Establecimiento) error
	Borrar(id string) error
}
