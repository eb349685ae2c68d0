package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP (superficies CRUD y auth).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ApiResponse envoltura de las respuestas del subsistema de colas.
// Code 0 indica éxito; los códigos negativos identifican el fallo concreto
// de cada operación y el status HTTP refleja el signo (200 / 400 / 403).
type ApiResponse struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
}
