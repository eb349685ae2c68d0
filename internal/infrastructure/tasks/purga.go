package tasks

import (
	"context"
	"time"

	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
	"github.com/robfig/cron/v3"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de cola atado a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(colaRepo repository.ColaRepository) error) error
}

// Purga proceso de archivado fuera de banda: marca como tombstone las
// entradas inactivas que superan la retención y elimina físicamente las
// tombstoneadas que superan el doble de retención. Nunca lo invocan las
// operaciones normales de cola.
type Purga struct {
	tx        TxRunner
	retencion time.Duration
	log       *logger.Logger
	cron      *cron.Cron
}

// NewPurga construye el proceso con la retención en días.
func NewPurga(tx TxRunner, retencionDias int, log *logger.Logger) *Purga {
	return &Purga{
		tx:        tx,
		retencion: time.Duration(retencionDias) * 24 * time.Hour,
		log:       log,
	}
}

// Start programa la purga diaria (03:30). Devuelve error si la expresión cron
// no es válida.
func (p *Purga) Start() error {
	p.cron = cron.New()
	if _, err := p.cron.AddFunc("30 3 * * *", p.Ejecutar); err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

// Stop detiene el planificador y espera a que termine la ejecución en curso.
func (p *Purga) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}

// Ejecutar lanza una pasada de purga. El marcado y el borrado van en la misma
// transacción para que una pasada interrumpida no deje estados a medias.
func (p *Purga) Ejecutar() {
	ahora := time.Now()
	var marcadas, borradas int64
	err := p.tx.Run(context.Background(), func(colaRepo repository.ColaRepository) error {
		var err error
		if marcadas, err = colaRepo.MarcarTombstones(ahora.Add(-p.retencion)); err != nil {
			return err
		}
		borradas, err = colaRepo.BorrarTombstones(ahora.Add(-2 * p.retencion))
		return err
	})
	if err != nil {
		p.log.Error().Err(err).Msg("purga de entradas en cola fallida")
		return
	}
	p.log.Info().
		Int64("marcadas", marcadas).
		Int64("borradas", borradas).
		Msg("purga de entradas en cola completada")
}
