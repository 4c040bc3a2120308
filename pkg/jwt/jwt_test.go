package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-console/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "a@x.com", "sandbox", 60)
	require.NoError(t, err)

	userID, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "a@x.com", "sandbox", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "a@x.com", "sandbox", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestInspect_LeeExpiracionSinSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "a@x.com", "sandbox", 10)
	require.NoError(t, err)

	info, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, info.Subject)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), info.ExpiresAt, 5*time.Second)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(11*time.Minute)))
}

func TestInspect_TokenOpaco(t *testing.T) {
	_, err := pkgjwt.Inspect("token-opaco-sin-puntos")
	assert.Error(t, err)
}
