package cola_test

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcolmenar/colavirtual-api/internal/application/cola"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeColaRepo reproduce en memoria el contrato del repositorio: exclusividad
// de entrada activa por usuario+establecimiento, orden por momento_estimado
// con empates por ID, y errores tipados por operación.
type fakeColaRepo struct {
	mu       sync.Mutex
	entradas map[string]*entity.UsuarioEnCola
	seq      int // desempata momentos idénticos dentro del test

	// errores forzados por operación para simular caídas del almacén
	errEstaEncolado error
	errCrear        error
	errDesactivar   error
	errDesencolar   error
	errListar       error
}

func newFakeColaRepo() *fakeColaRepo {
	return &fakeColaRepo{entradas: make(map[string]*entity.UsuarioEnCola)}
}

func (f *fakeColaRepo) EstaEncolado(usuarioID, establecimientoID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errEstaEncolado != nil {
		return false, f.errEstaEncolado
	}
	for _, e := range f.entradas {
		if e.Activo && e.UsuarioID != nil && *e.UsuarioID == usuarioID && e.EstablecimientoID == establecimientoID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeColaRepo) Crear(entrada *entity.UsuarioEnCola) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errCrear != nil {
		return f.errCrear
	}
	if entrada.UsuarioID != nil {
		for _, e := range f.entradas {
			if e.Activo && e.UsuarioID != nil && *e.UsuarioID == *entrada.UsuarioID &&
				e.EstablecimientoID == entrada.EstablecimientoID {
				return domain.ErrYaEncolado
			}
		}
	}
	f.seq++
	copia := *entrada
	copia.MomentoEstimado = copia.MomentoEstimado.Add(time.Duration(f.seq) * time.Microsecond)
	f.entradas[copia.ID] = &copia
	return nil
}

func (f *fakeColaRepo) BuscarPorID(id string) (*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entradas[id]
	if !ok {
		return nil, nil
	}
	copia := *e
	return &copia, nil
}

func (f *fakeColaRepo) DesactivarPorUsuario(usuarioID, establecimientoID string) (*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errDesactivar != nil {
		return nil, f.errDesactivar
	}
	for _, e := range f.entradas {
		if e.Activo && e.UsuarioID != nil && *e.UsuarioID == usuarioID && e.EstablecimientoID == establecimientoID {
			e.Activo = false
			copia := *e
			return &copia, nil
		}
	}
	return nil, domain.ErrNoEncolado
}

func (f *fakeColaRepo) DesactivarAnonimo(entradaID, establecimientoID string) (*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entradas[entradaID]
	if !ok || !e.Activo || e.UsuarioID != nil || e.EstablecimientoID != establecimientoID {
		return nil, domain.ErrNotFound
	}
	e.Activo = false
	copia := *e
	return &copia, nil
}

func (f *fakeColaRepo) DesactivarPorID(entradaID string) (*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entradas[entradaID]
	if !ok || !e.Activo {
		return nil, domain.ErrNoEncolado
	}
	e.Activo = false
	copia := *e
	return &copia, nil
}

func (f *fakeColaRepo) DesencolarPrimero(establecimientoID string) (*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errDesencolar != nil {
		return nil, f.errDesencolar
	}
	activos := f.activosLocked(establecimientoID)
	if len(activos) == 0 {
		return nil, domain.ErrColaVacia
	}
	primero := activos[0]
	primero.Activo = false
	copia := *primero
	return &copia, nil
}

func (f *fakeColaRepo) ListarActivos(establecimientoID string) ([]*entity.UsuarioEnCola, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errListar != nil {
		return nil, f.errListar
	}
	activos := f.activosLocked(establecimientoID)
	out := make([]*entity.UsuarioEnCola, 0, len(activos))
	for _, e := range activos {
		copia := *e
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeColaRepo) MarcarTombstones(limite time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.entradas {
		if !e.Activo && e.DeletedAt == nil && e.UpdatedAt.Before(limite) {
			now := time.Now()
			e.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (f *fakeColaRepo) BorrarTombstones(limite time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, e := range f.entradas {
		if e.DeletedAt != nil && e.DeletedAt.Before(limite) {
			delete(f.entradas, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeColaRepo) activosLocked(establecimientoID string) []*entity.UsuarioEnCola {
	var activos []*entity.UsuarioEnCola
	for _, e := range f.entradas {
		if e.Activo && e.EstablecimientoID == establecimientoID {
			activos = append(activos, e)
		}
	}
	sort.Slice(activos, func(i, j int) bool {
		if !activos[i].MomentoEstimado.Equal(activos[j].MomentoEstimado) {
			return activos[i].MomentoEstimado.Before(activos[j].MomentoEstimado)
		}
		return activos[i].ID < activos[j].ID
	})
	return activos
}

// fakeGate autoriza solo al administrador dado de alta por establecimiento.
type fakeGate struct {
	admins map[string]string // establecimientoID -> adminID
}

func (g *fakeGate) PuedeAdministrar(usuarioID, establecimientoID string) (bool, error) {
	return g.admins[establecimientoID] == usuarioID, nil
}

// fakePublisher acumula los eventos emitidos; puede forzarse a fallar.
type fakePublisher struct {
	mu      sync.Mutex
	eventos []string
	fallar  bool
}

func (p *fakePublisher) PublicarPasoTurno(establecimientoID string, entrada *entity.UsuarioEnCola) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fallar {
		return errors.New("broker caído")
	}
	p.eventos = append(p.eventos, establecimientoID+":"+entrada.ID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	estID      = "est-1"
	otroEstID  = "est-2"
	adminID    = "admin-1"
	usuarioID  = "user-1"
	usuario2ID = "user-2"
)

func buildUseCase(repo *fakeColaRepo, pub cola.TurnoPublisher) *cola.ColaUseCase {
	gate := &fakeGate{admins: map[string]string{estID: adminID, otroEstID: "otro-admin"}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return cola.NewColaUseCase(repo, gate, pub, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas
// ──────────────────────────────────────────────────────────────────────────────

func TestApuntarUsuario_AltaSimple(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	entrada, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	require.NotNil(t, entrada)
	assert.NotEmpty(t, entrada.ID)
	assert.Equal(t, estID, entrada.EstablecimientoID)
	require.NotNil(t, entrada.UsuarioID)
	assert.Equal(t, usuarioID, *entrada.UsuarioID)
	assert.True(t, entrada.Activo)
}

// Exclusividad: un usuario con entrada activa no puede apuntarse dos veces a
// la misma cola.
func TestApuntarUsuario_SegundaAltaRechazada(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	_, err = uc.ApuntarUsuario(usuarioID, estID)
	assert.ErrorIs(t, err, domain.ErrYaEncolado,
		"la segunda alta del mismo usuario en la misma cola debe rechazarse")
}

// El mismo usuario sí puede estar a la vez en colas de establecimientos
// distintos: la exclusividad es por usuario+establecimiento.
func TestApuntarUsuario_ColasDistintasIndependientes(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	_, err = uc.ApuntarUsuario(usuarioID, otroEstID)
	assert.NoError(t, err)
}

// Tras desapuntarse, el usuario puede volver a apuntarse: la exclusividad solo
// cuenta entradas activas.
func TestApuntarUsuario_ReencolarTrasBaja(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	_, err = uc.DesapuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	_, err = uc.ApuntarUsuario(usuarioID, estID)
	assert.NoError(t, err, "con la entrada anterior inactiva el alta debe aceptarse")
}

func TestApuntarUsuario_ParametrosVacios(t *testing.T) {
	uc := buildUseCase(newFakeColaRepo(), nil)

	_, err := uc.ApuntarUsuario("", estID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ApuntarUsuario(usuarioID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApuntarInvitado_AltaYTokenDeCapacidad(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	entrada, err := uc.ApuntarInvitado("  María  ", estID)
	require.NoError(t, err)
	assert.Equal(t, "María", entrada.NombreAnonimo, "el nombre debe llegar saneado")
	assert.Nil(t, entrada.UsuarioID)
	assert.NotEmpty(t, entrada.ID, "el ID es el token de capacidad del invitado")
}

// Los invitados no se deduplican: el mismo nombre puede encolarse varias veces.
func TestApuntarInvitado_MismoNombreVariasVeces(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	a, err := uc.ApuntarInvitado("María", estID)
	require.NoError(t, err)
	b, err := uc.ApuntarInvitado("María", estID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	lista, err := uc.ListarCola(estID)
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestApuntarInvitado_NombreInvalido(t *testing.T) {
	uc := buildUseCase(newFakeColaRepo(), nil)

	_, err := uc.ApuntarInvitado("", estID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.ApuntarInvitado("   \t\n ", estID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre solo de espacios y control")

	_, err = uc.ApuntarInvitado(strings.Repeat("ñ", 101), estID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "más de 100 runas")

	_, err = uc.ApuntarInvitado(strings.Repeat("ñ", 100), estID)
	assert.NoError(t, err, "exactamente 100 runas es válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bajas voluntarias
// ──────────────────────────────────────────────────────────────────────────────

// Desapuntarse sin estar apuntado se rechaza con el error de negocio, no se
// ignora en silencio.
func TestDesapuntarUsuario_SinEntradaActiva(t *testing.T) {
	uc := buildUseCase(newFakeColaRepo(), nil)

	_, err := uc.DesapuntarUsuario(usuarioID, estID)
	assert.ErrorIs(t, err, domain.ErrNoEncolado)
}

func TestDesapuntarUsuario_BajaYRepeticionRechazada(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	alta, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	baja, err := uc.DesapuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	assert.Equal(t, alta.ID, baja.ID)
	assert.False(t, baja.Activo)

	_, err = uc.DesapuntarUsuario(usuarioID, estID)
	assert.ErrorIs(t, err, domain.ErrNoEncolado, "la segunda baja debe rechazarse")
}

// La baja de un usuario no toca las entradas de los demás.
func TestDesapuntarUsuario_NoAfectaAlResto(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	_, err = uc.ApuntarUsuario(usuario2ID, estID)
	require.NoError(t, err)

	_, err = uc.DesapuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	lista, err := uc.ListarCola(estID)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, usuario2ID, *lista[0].UsuarioID)
}

// El token de capacidad de un invitado solo desactiva su propia entrada y solo
// dentro de su establecimiento.
func TestDesapuntarInvitado_TokenAcotado(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	invitado, err := uc.ApuntarInvitado("María", estID)
	require.NoError(t, err)
	registrado, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	// Token inexistente
	_, err = uc.DesapuntarInvitado("no-existe", estID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Token válido pero en otro establecimiento
	_, err = uc.DesapuntarInvitado(invitado.ID, otroEstID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El ID de una entrada de usuario registrado no sirve como token anónimo
	_, err = uc.DesapuntarInvitado(registrado.ID, estID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El token correcto en su establecimiento sí
	baja, err := uc.DesapuntarInvitado(invitado.ID, estID)
	require.NoError(t, err)
	assert.False(t, baja.Activo)

	// Y solo una vez
	_, err = uc.DesapuntarInvitado(invitado.ID, estID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso de turno
// ──────────────────────────────────────────────────────────────────────────────

// El paso de turno desencola en orden FIFO estricto.
func TestAdminPasaTurno_OrdenFIFO(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	primero, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	segundo, err := uc.ApuntarInvitado("María", estID)
	require.NoError(t, err)
	tercero, err := uc.ApuntarUsuario(usuario2ID, estID)
	require.NoError(t, err)

	for i, esperado := range []string{primero.ID, segundo.ID, tercero.ID} {
		turno, err := uc.AdminPasaTurno(estID, adminID)
		require.NoError(t, err, "paso de turno %d", i+1)
		assert.Equal(t, esperado, turno.ID, "el turno %d debe respetar el orden de llegada", i+1)
		assert.False(t, turno.Activo)
	}

	_, err = uc.AdminPasaTurno(estID, adminID)
	assert.ErrorIs(t, err, domain.ErrColaVacia, "agotada la cola, pasar turno debe fallar")
}

func TestAdminPasaTurno_ColaVacia(t *testing.T) {
	uc := buildUseCase(newFakeColaRepo(), nil)

	_, err := uc.AdminPasaTurno(estID, adminID)
	assert.ErrorIs(t, err, domain.ErrColaVacia)
}

// Solo el administrador del establecimiento puede pasar turno.
func TestAdminPasaTurno_NoAutorizado(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	_, err = uc.AdminPasaTurno(estID, usuarioID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un usuario normal no puede pasar turno")

	_, err = uc.AdminPasaTurno(estID, "otro-admin")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el admin de otro establecimiento tampoco")

	lista, err := uc.ListarCola(estID)
	require.NoError(t, err)
	assert.Len(t, lista, 1, "los intentos no autorizados no deben tocar la cola")
}

func TestAdminPasaTurno_PublicaEvento(t *testing.T) {
	repo := newFakeColaRepo()
	pub := &fakePublisher{}
	uc := buildUseCase(repo, pub)

	alta, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	turno, err := uc.AdminPasaTurno(estID, adminID)
	require.NoError(t, err)

	require.Len(t, pub.eventos, 1)
	assert.Equal(t, estID+":"+alta.ID, pub.eventos[0])
	assert.Equal(t, alta.ID, turno.ID)
}

// El fallo del broker no debe tumbar el paso de turno: el desencolado ya está
// persistido cuando se publica.
func TestAdminPasaTurno_FalloDePublicacionNoPropaga(t *testing.T) {
	repo := newFakeColaRepo()
	pub := &fakePublisher{fallar: true}
	uc := buildUseCase(repo, pub)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	turno, err := uc.AdminPasaTurno(estID, adminID)
	require.NoError(t, err)
	assert.False(t, turno.Activo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Desapunte forzoso por el administrador
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminDesapunta_EntradaPropia(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	alta, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	baja, err := uc.AdminDesapunta(alta.ID, adminID, estID)
	require.NoError(t, err)
	assert.Equal(t, alta.ID, baja.ID)
	assert.False(t, baja.Activo)
}

func TestAdminDesapunta_NoAutorizado(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	alta, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	_, err = uc.AdminDesapunta(alta.ID, usuario2ID, estID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminDesapunta_EntradaInexistente(t *testing.T) {
	uc := buildUseCase(newFakeColaRepo(), nil)

	_, err := uc.AdminDesapunta("no-existe", adminID, estID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un administrador no puede desapuntar entradas de colas ajenas aunque conozca
// su ID: la entrada debe pertenecer al establecimiento que administra.
func TestAdminDesapunta_EntradaDeOtroEstablecimiento(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	ajena, err := uc.ApuntarUsuario(usuarioID, otroEstID)
	require.NoError(t, err)

	_, err = uc.AdminDesapunta(ajena.ID, adminID, estID)
	assert.ErrorIs(t, err, domain.ErrEntradaAjena)

	lista, err := uc.ListarCola(otroEstID)
	require.NoError(t, err)
	assert.Len(t, lista, 1, "la entrada ajena debe quedar intacta")
}

func TestAdminDesapunta_EntradaYaInactiva(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	alta, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	_, err = uc.DesapuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	_, err = uc.AdminDesapunta(alta.ID, adminID, estID)
	assert.ErrorIs(t, err, domain.ErrNoEncolado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestListarCola_SoloActivosEnOrden(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)

	primero, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)
	segundo, err := uc.ApuntarInvitado("María", estID)
	require.NoError(t, err)
	_, err = uc.ApuntarUsuario(usuario2ID, otroEstID)
	require.NoError(t, err)

	lista, err := uc.ListarCola(estID)
	require.NoError(t, err)
	require.Len(t, lista, 2, "solo las entradas del establecimiento pedido")
	assert.Equal(t, primero.ID, lista[0].ID)
	assert.Equal(t, segundo.ID, lista[1].ID)

	_, err = uc.DesapuntarInvitado(segundo.ID, estID)
	require.NoError(t, err)

	lista, err = uc.ListarCola(estID)
	require.NoError(t, err)
	require.Len(t, lista, 1, "las entradas inactivas no se listan")
	assert.Equal(t, primero.ID, lista[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del almacén
// ──────────────────────────────────────────────────────────────────────────────

// Un fallo del almacén se propaga tal cual, sin disfrazarse de error de
// negocio: quien llega primero al repositorio devuelve su error sin traducir.
func TestApuntarUsuario_FalloDelAlmacen(t *testing.T) {
	repo := newFakeColaRepo()
	repo.errEstaEncolado = errors.New("conexión perdida")
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
	assert.NotErrorIs(t, err, domain.ErrYaEncolado,
		"el fallo del almacén no debe confundirse con un duplicado")
}

func TestApuntarUsuario_FalloAlCrear(t *testing.T) {
	repo := newFakeColaRepo()
	repo.errCrear = errors.New("conexión perdida")
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
}

func TestApuntarInvitado_FalloAlCrear(t *testing.T) {
	repo := newFakeColaRepo()
	repo.errCrear = errors.New("conexión perdida")
	uc := buildUseCase(repo, nil)

	_, err := uc.ApuntarInvitado("María", estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
}

func TestDesapuntarUsuario_FalloDelAlmacen(t *testing.T) {
	repo := newFakeColaRepo()
	repo.errEstaEncolado = errors.New("conexión perdida")
	uc := buildUseCase(repo, nil)

	_, err := uc.DesapuntarUsuario(usuarioID, estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
	assert.NotErrorIs(t, err, domain.ErrNoEncolado,
		"el fallo del almacén no debe confundirse con no estar encolado")
}

func TestDesapuntarUsuario_FalloAlDesactivar(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)
	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	repo.errDesactivar = errors.New("conexión perdida")
	_, err = uc.DesapuntarUsuario(usuarioID, estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
}

func TestAdminPasaTurno_FalloDelAlmacen(t *testing.T) {
	repo := newFakeColaRepo()
	uc := buildUseCase(repo, nil)
	_, err := uc.ApuntarUsuario(usuarioID, estID)
	require.NoError(t, err)

	repo.errDesencolar = errors.New("conexión perdida")
	_, err = uc.AdminPasaTurno(estID, adminID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
	assert.NotErrorIs(t, err, domain.ErrColaVacia,
		"el fallo del almacén no debe confundirse con la cola vacía")
}

func TestListarCola_FalloDelAlmacen(t *testing.T) {
	repo := newFakeColaRepo()
	repo.errListar = errors.New("conexión perdida")
	uc := buildUseCase(repo, nil)

	_, err := uc.ListarCola(estID)
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
}
