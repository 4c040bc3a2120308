package views

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Filtros de la lista de notificaciones, además de los tipos de entity.NotificationTypes.
const (
	FilterAll    = "all"
	FilterUnread = "unread"
)

// NotificationFilters filtros ofrecidos, en orden.
func NotificationFilters() []string {
	return append([]string{FilterAll, FilterUnread}, entity.NotificationTypes...)
}

// NotificationsData lista filtrada y el count informado por el servidor.
type NotificationsData struct {
	Items []entity.Notification `json:"items"`
	Count int                   `json:"count"`
}

// NotificationsSnapshot estado de la página de notificaciones.
type NotificationsSnapshot struct {
	State[NotificationsData]
	Filter         string   `json:"filter"`
	Filters        []string `json:"filters"`
	UnreadInView   int      `json:"unreadInView"`
	CanMarkAllRead bool     `json:"canMarkAllRead"`
}

// Notifications lista de notificaciones con filtro.
type Notifications struct {
	api     ports.NotificationsAPI
	counter ports.CounterRefresher

	mu     sync.Mutex
	filter string
	list   collection[NotificationsData]
}

// NewNotifications construye la vista. counter puede ser nil.
func NewNotifications(api ports.NotificationsAPI, counter ports.CounterRefresher) *Notifications {
	return &Notifications{
		api:     api,
		counter: counter,
		filter:  FilterAll,
		list:    collection[NotificationsData]{status: StatusIdle},
	}
}

// Load trae la lista con el filtro vigente.
func (v *Notifications) Load(ctx context.Context) error {
	return v.list.load(ctx, v.fetch)
}

// SetFilter cambia el filtro y recarga.
func (v *Notifications) SetFilter(ctx context.Context, filter string) error {
	if filter != FilterAll && filter != FilterUnread && !entity.IsNotificationType(filter) {
		return domain.ErrUnknownFilter
	}
	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()
	return v.Load(ctx)
}

// Filter filtro vigente.
func (v *Notifications) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *Notifications) fetch(ctx context.Context) (NotificationsData, error) {
	items, count, err := v.api.ListNotifications(ctx, queryFor(v.Filter()))
	if err != nil {
		return NotificationsData{}, err
	}
	return NotificationsData{Items: items, Count: count}, nil
}

func queryFor(filter string) dto.NotificationQuery {
	switch filter {
	case FilterAll:
		return dto.NotificationQuery{}
	case FilterUnread:
		unread := false
		return dto.NotificationQuery{Read: &unread}
	default:
		return dto.NotificationQuery{Type: filter}
	}
}

// Generate pide al servidor evaluar las reglas de notificación.
func (v *Notifications) Generate(ctx context.Context) error {
	return v.mutate(ctx, "generate", v.api.GenerateNotifications)
}

// MarkRead marca una notificación como leída.
func (v *Notifications) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return v.mutate(ctx, "mark_read", func(ctx context.Context) error {
		return v.api.MarkNotificationRead(ctx, id)
	})
}

// MarkAllRead marca todas como leídas.
func (v *Notifications) MarkAllRead(ctx context.Context) error {
	return v.mutate(ctx, "mark_all_read", v.api.MarkAllNotificationsRead)
}

// Delete elimina una notificación.
func (v *Notifications) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return v.mutate(ctx, "delete", func(ctx context.Context) error {
		return v.api.DeleteNotification(ctx, id)
	})
}

// mutate aplica el protocolo común y, si la mutación llegó al servidor, pide
// una lectura inmediata del contador de no leídas.
func (v *Notifications) mutate(ctx context.Context, action string, fn func(context.Context) error) error {
	applied := false
	err := v.list.mutateThenRefetch(ctx, action, func(ctx context.Context) error {
		err := fn(ctx)
		applied = err == nil
		return err
	}, v.fetch)
	if applied && v.counter != nil {
		v.counter.Nudge()
	}
	return err
}

func (v *Notifications) Acknowledge() { v.list.acknowledge() }

// Reset descarta el estado y vuelve al filtro "all".
func (v *Notifications) Reset() {
	v.mu.Lock()
	v.filter = FilterAll
	v.mu.Unlock()
	v.list.reset()
}

func (v *Notifications) Snapshot() interface{} {
	snap := NotificationsSnapshot{State: v.list.state(), Filter: v.Filter(), Filters: NotificationFilters()}
	for _, n := range snap.Data.Items {
		if !n.Read {
			snap.UnreadInView++
		}
	}
	snap.CanMarkAllRead = snap.UnreadInView > 0
	return snap
}
