package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-console/internal/domain"
)

func TestKindForStatus(t *testing.T) {
	cases := map[int]error{
		400: domain.ErrValidation,
		401: domain.ErrAuthFailure,
		403: domain.ErrValidation,
		404: domain.ErrNotFound,
		409: domain.ErrValidation,
		422: domain.ErrValidation,
		500: domain.ErrTransient,
		503: domain.ErrTransient,
	}
	for status, want := range cases {
		assert.ErrorIs(t, domain.KindForStatus(status), want, "status %d", status)
	}
}

func TestAPIError_UnwrapYMensaje(t *testing.T) {
	err := fmt.Errorf("crear venta: %w", &domain.APIError{
		Kind: domain.ErrValidation, Status: 400, Method: "POST", Path: "/sales", Message: "Estoque insuficiente",
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrAuthFailure))
	assert.Equal(t, "Estoque insuficiente", domain.UserMessage(err))
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestInvalidCredentials_EsAuthFailure(t *testing.T) {
	assert.ErrorIs(t, domain.ErrInvalidCredentials, domain.ErrAuthFailure)
}

func TestAPIError_SinRespuesta(t *testing.T) {
	err := &domain.APIError{Kind: domain.ErrTransient, Method: "GET", Path: "/products"}
	assert.Equal(t, "GET /products: "+domain.ErrTransient.Error(), err.Error())
	assert.Equal(t, err.Error(), domain.UserMessage(err))
}
