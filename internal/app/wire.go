// Package app wires the greeting backend, command registry and metrics from
// a loaded configuration. Every shell builds its dependencies through Wire.
package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"github.com/greetdeck/greetdeck/internal/config"
	"github.com/greetdeck/greetdeck/internal/greeting"
	"github.com/greetdeck/greetdeck/internal/greeting/rpc"
	"github.com/greetdeck/greetdeck/internal/invoke"
)

// Wire bundles the dependencies shared by the desktop app, the browser
// server and the CLI.
type Wire struct {
	Config   *config.Config
	Log      logger.Logger
	Greeter  greeting.Greeter // instrumented backend
	Commands *invoke.Registry
	Metrics  *prometheus.Registry

	closers []io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *config.Config, log logger.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Wire{
		Config:   cfg,
		Log:      log,
		Commands: invoke.NewRegistry(),
		Metrics:  prometheus.NewRegistry(),
	}

	backend, err := w.backend()
	if err != nil {
		return nil, err
	}

	metrics, err := greeting.NewMetrics(w.Metrics)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	w.Greeter = greeting.Instrument(backend, metrics)

	if err := greeting.Register(w.Commands, w.Greeter); err != nil {
		w.Close()
		return nil, err
	}

	log.Debug(fmt.Sprintf("greet backend: %s", cfg.Greeting.Backend))
	return w, nil
}

func (w *Wire) backend() (greeting.Greeter, error) {
	switch w.Config.Greeting.Backend {
	case config.BackendGRPC:
		client, err := rpc.Dial(w.Config.Greeting.Address)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, client)
		return client, nil
	default:
		return greeting.NewLocal(w.Config.Greeting.Template)
	}
}

// MetricsHandler serves the wire's Prometheus registry.
func (w *Wire) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(w.Metrics, promhttp.HandlerOpts{})
}

// Close releases backend connections.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
