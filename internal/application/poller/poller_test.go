package poller_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/poller"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/infrastructure/tokenstore"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// fakeCounter responde el count configurado o el error configurado.
type fakeCounter struct {
	mu    sync.Mutex
	count int
	err   error
	calls int
	reads []*bool
	block chan struct{}
}

func (f *fakeCounter) ListNotifications(ctx context.Context, q dto.NotificationQuery) ([]entity.Notification, int, error) {
	f.mu.Lock()
	f.calls++
	f.reads = append(f.reads, q.Read)
	block := f.block
	count, err := f.count, f.err
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	return nil, count, err
}

func (f *fakeCounter) GenerateNotifications(context.Context) error { return nil }
func (f *fakeCounter) MarkNotificationRead(context.Context, string) error { return nil }
func (f *fakeCounter) MarkAllNotificationsRead(context.Context) error { return nil }
func (f *fakeCounter) DeleteNotification(context.Context, string) error { return nil }

func (f *fakeCounter) set(count int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count, f.err = count, err
}

func (f *fakeCounter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRun_LecturaInmediataYPeriodica(t *testing.T) {
	api := &fakeCounter{count: 3}
	p := poller.New(api, 20*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Run(ctx)

	require.Eventually(t, func() bool { return p.Count() == 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return api.callCount() >= 3 }, time.Second, 5*time.Millisecond)

	api.mu.Lock()
	require.NotNil(t, api.reads[0])
	assert.False(t, *api.reads[0], "siempre pide read=false")
	api.mu.Unlock()
}

func TestRun_FalloConservaElContador(t *testing.T) {
	api := &fakeCounter{count: 4}
	p := poller.New(api, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Run(ctx)
	require.Eventually(t, func() bool { return p.Count() == 4 }, time.Second, time.Millisecond)

	api.set(9, &domain.APIError{Kind: domain.ErrTransient})
	calls := api.callCount()
	require.Eventually(t, func() bool { return api.callCount() >= calls+2 }, time.Second, time.Millisecond)
	assert.Equal(t, 4, p.Count())

	api.set(1, nil)
	require.Eventually(t, func() bool { return p.Count() == 1 }, time.Second, time.Millisecond)
}

func TestRun_CancelarDetieneLasLecturas(t *testing.T) {
	api := &fakeCounter{count: 1}
	p := poller.New(api, 5*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return api.callCount() >= 2 }, time.Second, time.Millisecond)

	cancel()
	<-done
	calls := api.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, api.callCount())
}

func TestNudge_LecturaExtra(t *testing.T) {
	api := &fakeCounter{count: 2}
	p := poller.New(api, time.Hour, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Run(ctx)
	require.Eventually(t, func() bool { return api.callCount() == 1 }, time.Second, time.Millisecond)

	api.set(5, nil)
	p.Nudge()
	require.Eventually(t, func() bool { return p.Count() == 5 }, time.Second, time.Millisecond)
	assert.Equal(t, 2, api.callCount())
}

// Una lectura en vuelo de una corrida anterior no escribe después de Reset.
func TestReset_DescartaLecturaVieja(t *testing.T) {
	block := make(chan struct{})
	api := &fakeCounter{count: 7, block: block}
	p := poller.New(api, time.Hour, logger.Nop())

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		p.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return api.callCount() == 1 }, time.Second, time.Millisecond)

	p.Reset()
	close(block)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, p.Count())

	cancel()
	<-done
}

// ── Supervisor + sesión ───────────────────────────────────────────────────────

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, dto.LoginRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{Token: "tok", User: dto.UserDTO{ID: "u1", Plan: entity.PlanFree}}, nil
}

func (fakeAuth) Register(context.Context, dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, domain.ErrValidation
}

func (fakeAuth) Profile(context.Context) (entity.UserProfile, error) {
	return entity.UserProfile{ID: "u1", Plan: entity.PlanFree}, nil
}

func TestSupervisor_ViveSoloMientrasHaySesion(t *testing.T) {
	api := &fakeCounter{count: 6}
	p := poller.New(api, 5*time.Millisecond, logger.Nop())
	sup := poller.NewSupervisor(p, logger.Nop())
	defer sup.Close()

	store := session.NewStore(fakeAuth{}, tokenstore.NewMemoryStore(""), logger.Nop())
	store.Subscribe(sup.Handle)
	store.Start(context.Background())
	assert.Zero(t, api.callCount(), "sin sesión no hay lecturas")

	require.NoError(t, store.Login(context.Background(), "a@x.com", "secret1"))
	require.Eventually(t, func() bool { return p.Count() == 6 }, time.Second, time.Millisecond)

	store.Logout(context.Background())
	assert.Zero(t, p.Count())

	// Tras el logout puede terminar a lo sumo la lectura que ya estaba en vuelo.
	time.Sleep(10 * time.Millisecond)
	calls := api.callCount()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, calls, api.callCount(), "cero lecturas después del logout")
}

func TestSupervisor_CloseDetieneLaCorrida(t *testing.T) {
	api := &fakeCounter{count: 1}
	p := poller.New(api, 5*time.Millisecond, logger.Nop())
	sup := poller.NewSupervisor(p, logger.Nop())

	store := session.NewStore(fakeAuth{}, tokenstore.NewMemoryStore("tok"), logger.Nop())
	store.Subscribe(sup.Handle)
	store.Start(context.Background())
	require.Equal(t, entity.SessionAuthenticated, store.Status())
	require.Eventually(t, func() bool { return api.callCount() >= 1 }, time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		sup.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close no terminó con la sesión todavía abierta")
	}
}
