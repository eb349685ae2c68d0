package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEstablecimientoRequest alta de establecimiento. El creador queda como
// administrador.
type CreateEstablecimientoRequest struct {
	Nombre      string               `json:"nombre"`
	Direccion   string               `json:"direccion"`
	Descripcion string               `json:"descripcion"`
	Latitud     *decimal.Decimal     `json:"latitud"`
	Longitud    *decimal.Decimal     `json:"longitud"`
}

// UpdateEstablecimientoRequest modificación de un establecimiento propio.
type UpdateEstablecimientoRequest struct {
	Nombre      string           `json:"nombre"`
	Direccion   string           `json:"direccion"`
	Descripcion string           `json:"descripcion"`
	Logo        string           `json:"logo"`
	Latitud     *decimal.Decimal `json:"latitud"`
	Longitud    *decimal.Decimal `json:"longitud"`
}

// BuscarEstablecimientoRequest búsqueda por texto libre.
type BuscarEstablecimientoRequest struct {
	Cadena string `json:"cadena"`
	PageRequest
}

// BuscarCercanosRequest búsqueda por geocoordenada.
type BuscarCercanosRequest struct {
	Latitud  decimal.Decimal `json:"latitud"`
	Longitud decimal.Decimal `json:"longitud"`
}

// EstablecimientoResponse establecimiento expuesto por la API.
type EstablecimientoResponse struct {
	ID                   string           `json:"id"`
	Nombre               string           `json:"nombre"`
	Direccion            string           `json:"direccion,omitempty"`
	Descripcion          string           `json:"descripcion,omitempty"`
	Logo                 string           `json:"logo,omitempty"`
	UsuarioAdministrador string           `json:"usuario_administrador"`
	Latitud              *decimal.Decimal `json:"latitud,omitempty"`
	Longitud             *decimal.Decimal `json:"longitud,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
