package cola

import (
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
)

var _ Autorizador = (*PolicyGate)(nil)

// PolicyGate implementa Autorizador contra el repositorio de establecimientos:
// administra la cola quien figura como usuario_administrador del
// establecimiento.
type PolicyGate struct {
	repo repository.EstablecimientoRepository
}

// NewPolicyGate construye el gate de autorización.
func NewPolicyGate(repo repository.EstablecimientoRepository) *PolicyGate {
	return &PolicyGate{repo: repo}
}

// PuedeAdministrar devuelve true si usuarioID administra establecimientoID.
// Un establecimiento inexistente es un "no", no un error.
func (g *PolicyGate) PuedeAdministrar(usuarioID, establecimientoID string) (bool, error) {
	establecimiento, err := g.repo.BuscarPorID(establecimientoID)
	if err != nil {
		return false, err
	}
	if establecimiento == nil {
		return false, nil
	}
	return establecimiento.UsuarioAdministrador == usuarioID, nil
}
