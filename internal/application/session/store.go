// Package session es la única dueña del token y del perfil del usuario.
// El resto de la aplicación observa su estado; solo el Gateway lee el token.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	pkgjwt "github.com/jhoicas/inventario-console/pkg/jwt"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

var (
	_ ports.CredentialSource = (*Store)(nil)
	_ ports.AuthFailureSink  = (*Store)(nil)
	_ ports.ProfileSource    = (*Store)(nil)
)

// Event transición de estado. Scope se cancela en cuanto la sesión deja de estar autenticada;
// fuera de authenticated llega ya cancelado.
type Event struct {
	Status entity.SessionStatus
	Scope  context.Context
	Epoch  uint64
}

// Snapshot vista de solo lectura de la sesión.
type Snapshot struct {
	Status         entity.SessionStatus `json:"status"`
	User           *entity.UserProfile  `json:"user,omitempty"`
	Epoch          uint64               `json:"epoch"`
	TokenExpiresAt *time.Time           `json:"tokenExpiresAt,omitempty"`
}

// Store estado de la sesión. Seguro para uso concurrente.
type Store struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    *logger.Logger

	// persistMu mantiene juntas cada escritura del almacenamiento durable y la
	// transición que la acompaña.
	persistMu sync.Mutex

	// emitMu serializa transiciones y notificaciones para que los suscriptores
	// vean los eventos en el mismo orden en que ocurrieron.
	emitMu sync.Mutex

	mu     sync.RWMutex
	status entity.SessionStatus
	token  string
	user   *entity.UserProfile
	epoch  uint64
	scope  context.Context
	cancel context.CancelFunc
	subs   map[int]func(Event)
	nextID int
}

// NewStore construye la sesión en estado loading hasta que se llame Start.
func NewStore(auth ports.AuthAPI, tokens ports.TokenStore, log *logger.Logger) *Store {
	scope, cancel := context.WithCancel(context.Background())
	cancel()
	return &Store{
		auth:   auth,
		tokens: tokens,
		log:    log.Component("session"),
		status: entity.SessionLoading,
		scope:  scope,
		cancel: cancel,
		subs:   make(map[int]func(Event)),
	}
}

// Subscribe registra fn para cada transición. fn corre en la goroutine que provocó el cambio
// y no debe llamar métodos que cambien la sesión. Devuelve la función para desuscribirse.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Start restaura la sesión desde el almacenamiento durable.
// Sin token termina en unauthenticated; con token valida el perfil y cualquier fallo equivale a Logout.
func (s *Store) Start(ctx context.Context) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer el token guardado")
	}

	// Un Login o Logout que llegue mientras se restaura gana sobre la restauración.
	entered := false
	s.transition(func() bool {
		if s.status != entity.SessionLoading || s.token != "" {
			return false
		}
		entered = true
		if token == "" {
			s.clearLocked()
			return true
		}
		s.token = token
		s.user = nil
		return true
	})
	if !entered {
		s.log.Debug().Msg("la sesión cambió antes de restaurar, se ignora el token guardado")
		return
	}
	if token == "" {
		return
	}

	profile, err := s.auth.Profile(ctx)
	if err != nil {
		s.discardRestore(ctx, token, err)
		return
	}
	applied := false
	s.transition(func() bool {
		if !s.restoringLocked(token) {
			return false
		}
		s.authenticateLocked(token, profile)
		applied = true
		return true
	})
	if !applied {
		s.log.Debug().Msg("perfil restaurado descartado: la sesión ya cambió")
		return
	}
	s.log.Info().Str("user_id", profile.ID).Str("plan", profile.Plan).Msg("sesión restaurada")
}

// discardRestore borra el token guardado si la sesión sigue restaurando ese mismo token.
func (s *Store) discardRestore(ctx context.Context, token string, cause error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	current := s.restoringLocked(token)
	s.mu.RUnlock()
	if !current {
		s.log.Debug().Err(cause).Msg("fallo de restauración descartado: la sesión ya cambió")
		return
	}

	s.log.Info().Err(cause).Msg("token guardado rechazado, se cierra la sesión")
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("no se pudo borrar el token guardado")
	}
	s.transition(func() bool {
		if !s.restoringLocked(token) {
			return false
		}
		s.clearLocked()
		return true
	})
}

// restoringLocked requiere s.mu tomado.
func (s *Store) restoringLocked(token string) bool {
	return s.status == entity.SessionLoading && s.token == token
}

// Login autentica con email y contraseña. En caso de fallo la sesión queda como estaba.
func (s *Store) Login(ctx context.Context, email, password string) error {
	req := dto.LoginRequest{Email: email, Password: password}
	if err := dto.Validate(req); err != nil {
		return err
	}
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

// Register crea la cuenta y deja la sesión autenticada con ella.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	req := dto.RegisterRequest{Name: name, Email: email, Password: password}
	if err := dto.Validate(req); err != nil {
		return err
	}
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

func (s *Store) establish(ctx context.Context, resp *dto.AuthResponse) error {
	if resp == nil || resp.Token == "" {
		return fmt.Errorf("%w: respuesta de autenticación sin token", domain.ErrTransient)
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	// Un fallo del almacenamiento durable no impide usar la sesión en memoria.
	if err := s.tokens.Save(ctx, resp.Token); err != nil {
		s.log.Error().Err(err).Msg("no se pudo persistir el token")
	}
	profile := resp.User.ToEntity()
	s.transition(func() bool {
		s.authenticateLocked(resp.Token, profile)
		return true
	})
	s.log.Info().Str("user_id", profile.ID).Str("plan", profile.Plan).Msg("sesión autenticada")
	return nil
}

// Logout borra el token durable y deja la sesión en unauthenticated. Nunca falla.
func (s *Store) Logout(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("no se pudo borrar el token guardado")
	}
	s.transition(func() bool {
		if s.status == entity.SessionUnauthenticated && s.token == "" {
			return false
		}
		s.clearLocked()
		return true
	})
}

// Invalidate cierra la sesión por un 401 del servidor. token es el que llevaba la petición
// rechazada: si ya no es el actual (petición de una sesión anterior) se ignora.
func (s *Store) Invalidate(token string, cause error) {
	s.mu.RLock()
	current := s.token
	s.mu.RUnlock()
	if token == "" || token != current {
		s.log.Debug().Err(cause).Msg("401 de una sesión anterior, ignorado")
		return
	}

	s.log.Warn().Err(cause).Msg("token rechazado por el servidor, cerrando sesión")
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("no se pudo borrar el token guardado")
	}
	s.transition(func() bool {
		if s.token != token {
			return false
		}
		s.clearLocked()
		return true
	})
}

// RefreshProfile vuelve a pedir el perfil (p. ej. después de cambiar de plan).
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.mu.RLock()
	token, status := s.token, s.status
	s.mu.RUnlock()
	if status != entity.SessionAuthenticated {
		return domain.ErrNotAuthenticated
	}
	profile, err := s.auth.Profile(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.token == token && s.status == entity.SessionAuthenticated {
		s.user = &profile
	}
	s.mu.Unlock()
	return nil
}

// BearerToken token vigente o "" si no hay. Solo lo consume el Gateway.
func (s *Store) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Status estado actual.
func (s *Store) Status() entity.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User perfil actual; ok es false fuera de authenticated.
func (s *Store) User() (entity.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return entity.UserProfile{}, false
	}
	return *s.user, true
}

// Epoch número de la sesión autenticada vigente (crece con cada login).
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Scope contexto ligado a la sesión autenticada vigente.
func (s *Store) Scope() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// TokenExpiry lee exp del token sin verificar la firma. Solo informativo.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.BearerToken()
	if token == "" {
		return time.Time{}, false
	}
	info, err := pkgjwt.Inspect(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return info.ExpiresAt, true
}

// Snapshot copia del estado para presentar.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{Status: s.status, Epoch: s.epoch}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	s.mu.RUnlock()
	if exp, ok := s.TokenExpiry(); ok {
		snap.TokenExpiresAt = &exp
	}
	return snap
}

// authenticateLocked requiere s.mu tomado.
func (s *Store) authenticateLocked(token string, profile entity.UserProfile) {
	s.cancel()
	s.scope, s.cancel = context.WithCancel(context.Background())
	s.epoch++
	s.status = entity.SessionAuthenticated
	s.token = token
	s.user = &profile
}

// clearLocked requiere s.mu tomado.
func (s *Store) clearLocked() {
	s.cancel()
	s.status = entity.SessionUnauthenticated
	s.token = ""
	s.user = nil
}

// transition aplica mutate bajo el lock y notifica si devolvió true.
func (s *Store) transition(mutate func() bool) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if !mutate() {
		s.mu.Unlock()
		return
	}
	ev := Event{Status: s.status, Scope: s.scope, Epoch: s.epoch}
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// IsSessionFatal informa si err obliga a cerrar la sesión (401 en una llamada autorizada).
func IsSessionFatal(err error) bool {
	return errors.Is(err, domain.ErrAuthFailure) && !errors.Is(err, domain.ErrInvalidCredentials)
}
