package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Establecimiento representa un negocio con cola virtual propia.
// Tiene exactamente un usuario administrador, que es el único que puede
// pasar turno o desapuntar entradas de su cola.
type Establecimiento struct {
	ID                   string
	Nombre               string
	Direccion            string
	Descripcion          string
	Logo                 string // nombre del fichero de logo; la subida es externa
	UsuarioAdministrador string
	Latitud              decimal.NullDecimal // NUMERIC(10,7); nulo si no está geolocalizado
	Longitud             decimal.NullDecimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
