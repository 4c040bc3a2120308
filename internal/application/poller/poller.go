// Package poller mantiene el contador de notificaciones no leídas mientras haya sesión.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// DefaultInterval intervalo entre lecturas del contador.
const DefaultInterval = 30 * time.Second

var _ ports.CounterRefresher = (*Poller)(nil)

// Poller lee periódicamente GET /notifications?read=false y guarda el count.
// Es lo único que escribe; las vistas nunca dependen de él.
type Poller struct {
	api      ports.NotificationsAPI
	interval time.Duration
	log      *logger.Logger
	nudge    chan struct{}

	mu       sync.Mutex
	count    int
	gen      uint64
	lastTick time.Time
}

// New construye el poller. interval <= 0 usa DefaultInterval.
func New(api ports.NotificationsAPI, interval time.Duration, log *logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		api:      api,
		interval: interval,
		log:      log.Component("poller"),
		nudge:    make(chan struct{}, 1),
	}
}

// Run lee de inmediato y luego una vez por intervalo hasta que ctx se cancele.
// Las peticiones usan ctx, así que al cancelarlo no sale ninguna más.
func (p *Poller) Run(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	select {
	case <-p.nudge:
	default:
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, gen)
		case <-p.nudge:
			p.tick(ctx, gen)
		}
	}
}

// Nudge pide una lectura inmediata. No bloquea; varias seguidas cuentan como una.
func (p *Poller) Nudge() {
	select {
	case p.nudge <- struct{}{}:
	default:
	}
}

// Count último valor leído.
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// LastTick hora de la última lectura exitosa.
func (p *Poller) LastTick() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastTick
}

// Reset pone el contador en cero y descarta lo que traiga una corrida anterior.
func (p *Poller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.count = 0
	p.lastTick = time.Time{}
}

func (p *Poller) tick(ctx context.Context, gen uint64) {
	if ctx.Err() != nil {
		return
	}
	unread := false
	_, count, err := p.api.ListNotifications(ctx, dto.NotificationQuery{Read: &unread})
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("no se pudo leer el contador de no leídas")
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || ctx.Err() != nil {
		return
	}
	p.count = count
	p.lastTick = time.Now()
}
