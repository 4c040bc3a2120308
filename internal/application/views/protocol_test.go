package views_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Una carga vieja que responde después de una más nueva no pisa el estado.
func TestCollection_GanaLaUltimaCargaEmitida(t *testing.T) {
	api := newFakeAPI()
	api.products = []entity.Product{widget(1)}
	gate := make(chan struct{})
	api.gate["ListProducts"] = gate
	v := views.NewProducts(api, api, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.Load(context.Background()) // vieja: queda bloqueada
	}()
	require.Eventually(t, func() bool { return api.called("ListProducts") == 1 }, time.Second, time.Millisecond)

	// La nueva ve stock 9 y termina primero.
	api.mu.Lock()
	api.products = []entity.Product{widget(9)}
	delete(api.gate, "ListProducts")
	api.mu.Unlock()
	require.NoError(t, v.Load(context.Background()))

	// La vieja lee el catálogo después de liberarse, pero su resultado se descarta.
	api.mu.Lock()
	api.products = []entity.Product{widget(1)}
	api.mu.Unlock()
	close(gate)
	wg.Wait()

	assert.Equal(t, 9, v.Products()[0].Stock)
}
