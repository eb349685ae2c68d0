package entity

import "time"

// EstablecimientoFavorito marca un establecimiento como favorito de un usuario.
type EstablecimientoFavorito struct {
	ID                string
	UsuarioID         string
	EstablecimientoID string
	CreatedAt         time.Time
}
