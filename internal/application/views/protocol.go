// Package views mantiene el estado local de cada página: qué se cargó del API remoto,
// si falló y qué error espera confirmación del usuario.
//
// Todas las vistas siguen el mismo protocolo:
//   - Load pide la colección canónica y la reemplaza completa.
//   - Una mutación exitosa va siempre seguida de un nuevo Load; nunca se parchea el estado local.
//   - Una mutación fallida deja una alerta y no recarga. Mientras la alerta no se confirme
//     (Acknowledge) la vista rechaza nuevas mutaciones con domain.ErrAlertPending.
//   - Solo la última carga emitida puede escribir el estado.
package views

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/domain"
)

// Status estado de carga de una vista.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// View contrato que usa la navegación para montar páginas.
type View interface {
	Load(ctx context.Context) error
	Reset()
	Acknowledge()
	Snapshot() interface{}
}

// Alert error de una acción del usuario pendiente de confirmar.
type Alert struct {
	Action  string `json:"action"`
	Message string `json:"message"`
	err     error
}

// Err error original de la acción.
func (a *Alert) Err() error { return a.err }

// State copia serializable del estado de una colección.
type State[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
	Alert  *Alert `json:"alert,omitempty"`
}

type collection[T any] struct {
	mu     sync.Mutex
	status Status
	data   T
	err    error
	alert  *Alert
	seq    uint64
}

func (c *collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.status = StatusLoading
	return c.seq
}

// apply escribe el resultado de la carga seq. Con partial los datos se guardan aunque haya error.
func (c *collection[T]) apply(seq uint64, data T, err error, partial bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return
	}
	if err != nil {
		c.status = StatusFailed
		c.err = err
		if partial {
			c.data = data
		}
		return
	}
	c.status = StatusReady
	c.data = data
	c.err = nil
}

func (c *collection[T]) load(ctx context.Context, fetch func(context.Context) (T, error)) error {
	seq := c.begin()
	data, err := fetch(ctx)
	c.apply(seq, data, err, false)
	return err
}

func (c *collection[T]) loadPartial(ctx context.Context, fetch func(context.Context) (T, error)) error {
	seq := c.begin()
	data, err := fetch(ctx)
	c.apply(seq, data, err, true)
	return err
}

// mutateThenRefetch ejecuta la mutación y, solo si tuvo éxito, recarga la colección.
func (c *collection[T]) mutateThenRefetch(
	ctx context.Context,
	action string,
	mutate func(context.Context) error,
	fetch func(context.Context) (T, error),
) error {
	if c.alertPending() {
		return domain.ErrAlertPending
	}
	if err := mutate(ctx); err != nil {
		c.raise(action, err)
		return err
	}
	return c.load(ctx, fetch)
}

func (c *collection[T]) alertPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alert != nil
}

func (c *collection[T]) raise(action string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = &Alert{Action: action, Message: domain.UserMessage(err), err: err}
}

func (c *collection[T]) acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// reset vuelve a idle e invalida cualquier carga en vuelo.
func (c *collection[T]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.seq++
	c.status = StatusIdle
	c.data = zero
	c.err = nil
	c.alert = nil
}

func (c *collection[T]) current() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

func (c *collection[T]) state() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State[T]{Status: c.status, Data: c.data}
	if c.err != nil {
		st.Error = domain.UserMessage(c.err)
	}
	if c.alert != nil {
		a := *c.alert
		st.Alert = &a
	}
	return st
}

type result[T any] struct {
	val T
	err error
}

// join2 ejecuta dos lecturas en paralelo y espera ambas.
func join2[A, B any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
) (result[A], result[B]) {
	aCh := make(chan result[A], 1)
	bCh := make(chan result[B], 1)
	go func() {
		v, err := fa(ctx)
		aCh <- result[A]{v, err}
	}()
	go func() {
		v, err := fb(ctx)
		bCh <- result[B]{v, err}
	}()
	return <-aCh, <-bCh
}
