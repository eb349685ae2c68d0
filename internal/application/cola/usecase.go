package cola

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"github.com/jcolmenar/colavirtual-api/internal/domain"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
	"golang.org/x/text/unicode/norm"
)

// Longitud máxima del nombre de un invitado anónimo, en runas.
const maxNombreAnonimo = 100

// ColaUseCase casos de uso del ciclo de vida de la cola: altas de usuarios
// registrados y de invitados, bajas voluntarias, desapunte forzoso por el
// administrador y paso de turno FIFO.
//
// El guard de pertenencia se consulta antes de mutar para devolver el error
// de negocio limpio, pero la autoridad sobre los invariantes bajo carreras es
// siempre la escritura condicional del repositorio.
type ColaUseCase struct {
	repo      repository.ColaRepository
	gate      Autorizador
	publisher TurnoPublisher
	log       *logger.Logger
}

// NewColaUseCase construye el caso de uso. publisher puede ser nil si no hay
// broker configurado; el paso de turno sigue funcionando sin emitir el evento.
func NewColaUseCase(repo repository.ColaRepository, gate Autorizador, publisher TurnoPublisher, log *logger.Logger) *ColaUseCase {
	return &ColaUseCase{repo: repo, gate: gate, publisher: publisher, log: log}
}

// ApuntarUsuario encola a un usuario registrado en el establecimiento.
// Devuelve domain.ErrYaEncolado si ya tiene una entrada activa en esa cola.
func (uc *ColaUseCase) ApuntarUsuario(usuarioID, establecimientoID string) (*dto.UsuarioEnColaResponse, error) {
	if usuarioID == "" || establecimientoID == "" {
		return nil, domain.ErrInvalidInput
	}
	encolado, err := uc.repo.EstaEncolado(usuarioID, establecimientoID)
	if err != nil {
		return nil, err
	}
	if encolado {
		return nil, domain.ErrYaEncolado
	}
	now := time.Now()
	entrada := &entity.UsuarioEnCola{
		ID:                uuid.New().String(),
		EstablecimientoID: establecimientoID,
		UsuarioID:         &usuarioID,
		MomentoEstimado:   now,
		Activo:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	// Bajo una carrera entre guard y escritura, el índice de exclusividad del
	// almacén rechaza el duplicado y Crear devuelve ErrYaEncolado igualmente.
	if err := uc.repo.Crear(entrada); err != nil {
		return nil, err
	}
	return toResponse(entrada), nil
}

// ApuntarInvitado encola a un invitado anónimo con el nombre visible
// indicado. No hay deduplicación por nombre: el mismo nombre puede encolarse
// varias veces. El ID devuelto es el token de capacidad del invitado para
// desapuntarse después.
func (uc *ColaUseCase) ApuntarInvitado(nombre, establecimientoID string) (*dto.UsuarioEnColaResponse, error) {
	if establecimientoID == "" {
		return nil, domain.ErrInvalidInput
	}
	nombre = sanearNombreAnonimo(nombre)
	if nombre == "" || utf8.RuneCountInString(nombre) > maxNombreAnonimo {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	entrada := &entity.UsuarioEnCola{
		ID:                uuid.New().String(),
		EstablecimientoID: establecimientoID,
		NombreAnonimo:     nombre,
		MomentoEstimado:   now,
		Activo:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Crear(entrada); err != nil {
		return nil, err
	}
	return toResponse(entrada), nil
}

// DesapuntarUsuario saca al usuario registrado de la cola del
// establecimiento. Devuelve domain.ErrNoEncolado si no estaba encolado:
// desapuntarse de una cola a la que nunca se apuntó se rechaza, no se ignora.
func (uc *ColaUseCase) DesapuntarUsuario(usuarioID, establecimientoID string) (*dto.UsuarioEnColaResponse, error) {
	if usuarioID == "" || establecimientoID == "" {
		return nil, domain.ErrInvalidInput
	}
	encolado, err := uc.repo.EstaEncolado(usuarioID, establecimientoID)
	if err != nil {
		return nil, err
	}
	if !encolado {
		return nil, domain.ErrNoEncolado
	}
	entrada, err := uc.repo.DesactivarPorUsuario(usuarioID, establecimientoID)
	if err != nil {
		return nil, err
	}
	return toResponse(entrada), nil
}

// DesapuntarInvitado saca de la cola la entrada anónima referida por su token
// de capacidad, acotada al establecimiento. Devuelve domain.ErrNotFound si no
// hay entrada que case (ID equivocado, otro establecimiento o entrada de un
// usuario registrado).
func (uc *ColaUseCase) DesapuntarInvitado(entradaID, establecimientoID string) (*dto.UsuarioEnColaResponse, error) {
	if entradaID == "" || establecimientoID == "" {
		return nil, domain.ErrInvalidInput
	}
	entrada, err := uc.repo.DesactivarAnonimo(entradaID, establecimientoID)
	if err != nil {
		return nil, err
	}
	return toResponse(entrada), nil
}

// AdminDesapunta desactiva una entrada concreta, sea de usuario registrado o
// anónima, a petición del administrador del establecimiento. La entrada debe
// pertenecer al establecimiento indicado: un administrador no puede tocar
// colas ajenas aunque conozca el ID de la entrada.
func (uc *ColaUseCase) AdminDesapunta(entradaID, adminID, establecimientoID string) (*dto.UsuarioEnColaResponse, error) {
	if entradaID == "" || adminID == "" || establecimientoID == "" {
		return nil, domain.ErrInvalidInput
	}
	autorizado, err := uc.gate.PuedeAdministrar(adminID, establecimientoID)
	if err != nil {
		return nil, err
	}
	if !autorizado {
		return nil, domain.ErrUnauthorized
	}
	objetivo, err := uc.repo.BuscarPorID(entradaID)
	if err != nil {
		return nil, err
	}
	if objetivo == nil {
		return nil, domain.ErrNotFound
	}
	if objetivo.EstablecimientoID != establecimientoID {
		return nil, domain.ErrEntradaAjena
	}
	entrada, err := uc.repo.DesactivarPorID(entradaID)
	if err != nil {
		return nil, err
	}
	return toResponse(entrada), nil
}

// AdminPasaTurno desactiva y devuelve la entrada activa más antigua de la
// cola del establecimiento (orden por momento_estimado, empates por ID).
// Devuelve domain.ErrColaVacia si no hay nadie encolado: pasar turno con la
// cola vacía es un error de cara al administrador, no un fallo del sistema.
// Tras el desencolado emite el evento de paso de turno; el fallo de
// publicación se registra y no se propaga.
func (uc *ColaUseCase) AdminPasaTurno(establecimientoID, adminID string) (*dto.UsuarioEnColaResponse, error) {
	if establecimientoID == "" || adminID == "" {
		return nil, domain.ErrInvalidInput
	}
	autorizado, err := uc.gate.PuedeAdministrar(adminID, establecimientoID)
	if err != nil {
		return nil, err
	}
	if !autorizado {
		return nil, domain.ErrUnauthorized
	}
	entrada, err := uc.repo.DesencolarPrimero(establecimientoID)
	if err != nil {
		return nil, err
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublicarPasoTurno(establecimientoID, entrada); err != nil {
			uc.log.Warn().Err(err).
				Str("establecimiento_id", establecimientoID).
				Str("entrada_id", entrada.ID).
				Msg("no se pudo publicar el evento de paso de turno")
		}
	}
	return toResponse(entrada), nil
}

// ListarCola devuelve las entradas activas del establecimiento en orden FIFO.
func (uc *ColaUseCase) ListarCola(establecimientoID string) ([]*dto.UsuarioEnColaResponse, error) {
	entradas, err := uc.repo.ListarActivos(establecimientoID)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.UsuarioEnColaResponse, 0, len(entradas))
	for _, e := range entradas {
		list = append(list, toResponse(e))
	}
	return list, nil
}

// sanearNombreAnonimo normaliza a NFC, elimina caracteres de control y
// recorta espacios. La validación de charset más fina es responsabilidad de
// la capa de validación de peticiones.
func sanearNombreAnonimo(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func toResponse(e *entity.UsuarioEnCola) *dto.UsuarioEnColaResponse {
	if e == nil {
		return nil
	}
	return &dto.UsuarioEnColaResponse{
		ID:                e.ID,
		EstablecimientoID: e.EstablecimientoID,
		UsuarioID:         e.UsuarioID,
		NombreAnonimo:     e.NombreAnonimo,
		MomentoEstimado:   e.MomentoEstimado,
		Aplazada:          e.Aplazada,
		Activo:            e.Activo,
	}
}
