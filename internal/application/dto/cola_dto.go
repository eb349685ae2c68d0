package dto

import "time"

// ApuntarseComoInvitadoRequest alta anónima en la cola.
type ApuntarseComoInvitadoRequest struct {
	NombreUsuarioAnonimo string `json:"nombre_usuario_anonimo"`
}

// DesapuntarseComoInvitadoRequest baja anónima por token de capacidad.
// El ID puede llegar en el cuerpo o en la cookie usuarioAnonimoID.
type DesapuntarseComoInvitadoRequest struct {
	EntradaID string `json:"entrada_id"`
}

// UsuarioEnColaResponse entrada en cola expuesta por la API.
type UsuarioEnColaResponse struct {
	ID                string    `json:"id"`
	EstablecimientoID string    `json:"establecimiento_id"`
	UsuarioID         *string   `json:"usuario_id,omitempty"`
	NombreAnonimo     string    `json:"nombre_anonimo,omitempty"`
	MomentoEstimado   time.Time `json:"momento_estimado"`
	Aplazada          bool      `json:"aplazada"`
	Activo            bool      `json:"activo"`
}
