package poller

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Supervisor ata la vida del poller a la de la sesión: arranca una corrida por cada
// sesión autenticada y la corrida termina cuando se cancela el scope de esa sesión.
type Supervisor struct {
	poller *Poller
	log    *logger.Logger
	root   context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	lastEpoch uint64
	closed    bool
}

// NewSupervisor construye el supervisor. Conectarlo con store.Subscribe(sup.Handle).
func NewSupervisor(p *Poller, log *logger.Logger) *Supervisor {
	root, stop := context.WithCancel(context.Background())
	return &Supervisor{poller: p, log: log.Component("poller"), root: root, stop: stop}
}

// Handle recibe las transiciones de la sesión. No bloquea.
func (s *Supervisor) Handle(ev session.Event) {
	if ev.Status != entity.SessionAuthenticated {
		s.poller.Reset()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || ev.Epoch <= s.lastEpoch {
		return
	}
	s.lastEpoch = ev.Epoch

	ctx, cancel := context.WithCancel(ev.Scope)
	release := context.AfterFunc(s.root, cancel)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer release()
		defer cancel()
		s.log.Debug().Uint64("epoch", ev.Epoch).Msg("contador iniciado")
		s.poller.Run(ctx)
		s.log.Debug().Uint64("epoch", ev.Epoch).Msg("contador detenido")
	}()
}

// Close detiene cualquier corrida y espera a que termine.
func (s *Supervisor) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stop()
	s.wg.Wait()
}
