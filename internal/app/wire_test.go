package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greetdeck/greetdeck/internal/config"
	"github.com/greetdeck/greetdeck/internal/invoke"
	"github.com/greetdeck/greetdeck/internal/logging"
)

func TestNewWireLocalBackend(t *testing.T) {
	w, err := NewWire(config.Default(), logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	result, err := w.Commands.Invoke(context.Background(), "greet", invoke.Args{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice! You've been greeted from Go!", result)

	got, err := w.Greeter.Greet(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bob! You've been greeted from Go!", got)
}

func TestNewWireCustomTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.Greeting.Template = "Ahoy {name}"

	w, err := NewWire(cfg, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	got, err := w.Greeter.Greet(context.Background(), "Cap")
	require.NoError(t, err)
	assert.Equal(t, "Ahoy Cap", got)
}

func TestNewWireGRPCRequiresAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Greeting.Backend = config.BackendGRPC

	_, err := NewWire(cfg, logging.Discard())
	assert.ErrorIs(t, err, config.ErrMissingAddress)
}

func TestNewWireGRPCBackendConnectsLazily(t *testing.T) {
	cfg := config.Default()
	cfg.Greeting.Backend = config.BackendGRPC
	cfg.Greeting.Address = "127.0.0.1:1"

	w, err := NewWire(cfg, logging.Discard())
	require.NoError(t, err)
	assert.Len(t, w.closers, 1)
	assert.NoError(t, w.Close())
	assert.Empty(t, w.closers)
}

func TestMetricsHandlerExposesGreetCalls(t *testing.T) {
	w, err := NewWire(config.Default(), logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Commands.Invoke(context.Background(), "greet", invoke.Args{"name": "x"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	w.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `greetdeck_greet_calls_total{outcome="ok"} 1`)
}
