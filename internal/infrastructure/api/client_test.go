package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/inventario-console/internal/infrastructure/sandbox"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSession hace de CredentialSource y AuthFailureSink.
type fakeSession struct {
	mu          sync.Mutex
	token       string
	invalidated []string
}

func (f *fakeSession) BearerToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Invalidate(token string, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, token)
}

func (f *fakeSession) Invalidated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}

// newSandboxClient levanta el remoto simulado y un Gateway enlazado a una sesión falsa.
func newSandboxClient(t *testing.T) (*api.Client, *fakeSession, *sandbox.Server) {
	t.Helper()
	sb := sandbox.New(sandbox.Config{JWTSecret: "test-secret-key-for-unit-tests", JWTIssuer: "api-test", BcryptCost: bcrypt.MinCost}, logger.Nop())
	srv := httptest.NewServer(adaptor.FiberApp(sb.App()))
	t.Cleanup(srv.Close)

	client := api.NewClient(api.Config{BaseURL: srv.URL + sandbox.Prefix}, logger.Nop())
	sess := &fakeSession{}
	client.Bind(sess, sess)
	return client, sess, sb
}

func signUp(t *testing.T, c *api.Client, sess *fakeSession) entity.UserProfile {
	t.Helper()
	out, err := c.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	sess.mu.Lock()
	sess.token = out.Token
	sess.mu.Unlock()
	return out.User.ToEntity()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidasNoInvalidaSesion(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	signUp(t, c, sess)

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "errada1"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrAuthFailure)
	assert.Equal(t, "Credenciais inválidas", domain.UserMessage(err))
	assert.Empty(t, sess.Invalidated(), "un login rechazado no es un fallo de sesión")
}

func TestProfile_TokenValido(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	user := signUp(t, c, sess)

	got, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, entity.PlanFree, got.Plan)
}

func TestLlamadaAutorizada_401InvalidaElTokenUsado(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	sess.token = "token.vencido.xx"

	_, err := c.ListProducts(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthFailure)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, []string{"token.vencido.xx"}, sess.Invalidated())
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_EstoqueInsuficienteEsValidacion(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	signUp(t, c, sess)
	ctx := context.Background()

	p, err := c.CreateProduct(ctx, dto.CreateProductRequest{Name: "Widget", SKU: "W-1", Category: "geral", Price: decimal.RequireFromString("9.99"), Stock: 2})
	require.NoError(t, err)

	_, err = c.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 3})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Estoque insuficiente", domain.UserMessage(err))

	sale, err := c.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.98").Equal(sale.TotalValue))
	assert.Equal(t, "Widget", sale.Product.Name)
}

func TestError5xx_EsTransitorio(t *testing.T) {
	c, sess, sb := newSandboxClient(t)
	signUp(t, c, sess)
	sb.FailNext(http.MethodGet, "/analytics/dashboard", http.StatusServiceUnavailable, "manutenção")

	_, err := c.DashboardSummary(context.Background())
	require.ErrorIs(t, err, domain.ErrTransient)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Empty(t, sess.Invalidated())
}

func TestSinRespuesta_EsTransitorio(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.NewClient(api.Config{BaseURL: url}, logger.Nop())
	_, err := c.ListPlans(context.Background())
	require.ErrorIs(t, err, domain.ErrTransient)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
}

func TestNotFound_ProductoInexistente(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	signUp(t, c, sess)

	err := c.DeleteProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Headers y contrato
// ──────────────────────────────────────────────────────────────────────────────

func TestHeaders_RequestIDYBearer(t *testing.T) {
	var (
		mu      sync.Mutex
		headers []http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Clone())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := api.NewClient(api.Config{BaseURL: srv.URL}, logger.Nop())
	sess := &fakeSession{}
	c.Bind(sess, sess)

	// Sin token la llamada se emite igual, sin Authorization.
	_, err := c.ListPlans(context.Background())
	require.NoError(t, err)

	sess.token = "abc"
	_, err = c.ListPlans(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, headers, 2)
	assert.Empty(t, headers[0].Get("Authorization"))
	assert.Equal(t, "Bearer abc", headers[1].Get("Authorization"))
	assert.NotEmpty(t, headers[0].Get(api.RequestIDHeader))
	assert.NotEqual(t, headers[0].Get(api.RequestIDHeader), headers[1].Get(api.RequestIDHeader))
}

func TestCreatePaymentLink_RespuestaSinLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := api.NewClient(api.Config{BaseURL: srv.URL}, logger.Nop())
	_, err := c.CreatePaymentLink(context.Background(), entity.PlanPro)
	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestNotificaciones_FiltroYContador(t *testing.T) {
	c, sess, sb := newSandboxClient(t)
	signUp(t, c, sess)
	ctx := context.Background()

	_, err := c.CreateProduct(ctx, dto.CreateProductRequest{Name: "Vazio", SKU: "V-1", Category: "geral", Stock: 0})
	require.NoError(t, err)
	require.NoError(t, c.GenerateNotifications(ctx))

	unread := false
	list, count, err := c.ListNotifications(ctx, dto.NotificationQuery{Read: &unread})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, list, 2)

	list, _, err = c.ListNotifications(ctx, dto.NotificationQuery{Type: entity.NotificationLowStock})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, c.MarkNotificationRead(ctx, list[0].ID))
	_, count, err = c.ListNotifications(ctx, dto.NotificationQuery{Read: &unread})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, c.MarkAllNotificationsRead(ctx))
	_, count, err = c.ListNotifications(ctx, dto.NotificationQuery{Read: &unread})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 4, sb.Hits(http.MethodGet, "/notifications"))
}

func TestPlanes_CatalogoYLink(t *testing.T) {
	c, sess, _ := newSandboxClient(t)
	signUp(t, c, sess)
	ctx := context.Background()

	plans, err := c.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, entity.PlanStarter, plans[0].ID)

	link, err := c.CreatePaymentLink(ctx, entity.PlanGrowth)
	require.NoError(t, err)
	assert.Contains(t, link, sandbox.CheckoutBaseURL)
}
