package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcolmenar/colavirtual-api/internal/application/cola"
	"github.com/jcolmenar/colavirtual-api/internal/domain/entity"
	"github.com/jcolmenar/colavirtual-api/pkg/config"
	goredis "github.com/redis/go-redis/v9"
)

var _ cola.TurnoPublisher = (*TurnoPublisher)(nil)

// TurnoPublisher publica el evento de paso de turno en un canal Redis por
// establecimiento. Los consumidores (notificaciones, paneles en tiempo real)
// son externos al servicio.
type TurnoPublisher struct {
	client *goredis.Client
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewTurnoPublisher construye el publicador sobre un cliente ya conectado.
func NewTurnoPublisher(client *goredis.Client) *TurnoPublisher {
	return &TurnoPublisher{client: client}
}

// pasoTurnoEvent payload serializado del evento.
type pasoTurnoEvent struct {
	EstablecimientoID string    `json:"establecimiento_id"`
	EntradaID         string    `json:"entrada_id"`
	UsuarioID         *string   `json:"usuario_id,omitempty"`
	NombreAnonimo     string    `json:"nombre_anonimo,omitempty"`
	MomentoEstimado   time.Time `json:"momento_estimado"`
	PasadoEn          time.Time `json:"pasado_en"`
}

// PublicarPasoTurno emite el evento en el canal cola:paso-turno:<establecimientoID>.
func (p *TurnoPublisher) PublicarPasoTurno(establecimientoID string, entrada *entity.UsuarioEnCola) error {
	payload, err := json.Marshal(pasoTurnoEvent{
		EstablecimientoID: establecimientoID,
		EntradaID:         entrada.ID,
		UsuarioID:         entrada.UsuarioID,
		NombreAnonimo:     entrada.NombreAnonimo,
		MomentoEstimado:   entrada.MomentoEstimado,
		PasadoEn:          time.Now(),
	})
	if err != nil {
		return fmt.Errorf("serializar evento paso-turno: %w", err)
	}
	canal := fmt.Sprintf("cola:paso-turno:%s", establecimientoID)
	if err := p.client.Publish(context.Background(), canal, payload).Err(); err != nil {
		return fmt.Errorf("publicar paso-turno: %w", err)
	}
	return nil
}
