package greeting

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greetdeck/greetdeck/internal/invoke"
)

func newDefaultLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal("")
	require.NoError(t, err)
	return l
}

func TestLocalGreet(t *testing.T) {
	l := newDefaultLocal(t)

	tests := []struct {
		name string
		want string
	}{
		{"Alice", "Hello, Alice! You've been greeted from Go!"},
		{"", "Hello, ! You've been greeted from Go!"},
		{"José-María", "Hello, José-María! You've been greeted from Go!"},
		{"User123", "Hello, User123! You've been greeted from Go!"},
		{"John Doe", "Hello, John Doe! You've been greeted from Go!"},
		{"世界", "Hello, 世界! You've been greeted from Go!"},
	}

	for _, tt := range tests {
		got, err := l.Greet(context.Background(), tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLocalCustomTemplate(t *testing.T) {
	l, err := NewLocal("Hi {name}, and again {name}")
	require.NoError(t, err)

	got, err := l.Greet(context.Background(), "Bo")
	require.NoError(t, err)
	assert.Equal(t, "Hi Bo, and again Bo", got)
}

func TestLocalInvalidTemplate(t *testing.T) {
	_, err := NewLocal("Hello there")
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestLocalCancelledContext(t *testing.T) {
	l := newDefaultLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Greet(ctx, "Alice")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegisterBindsGreetCommand(t *testing.T) {
	reg := invoke.NewRegistry()
	require.NoError(t, Register(reg, newDefaultLocal(t)))

	result, err := reg.Invoke(context.Background(), "greet", invoke.Args{"name": "John"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, John! You've been greeted from Go!", result)
	assert.Equal(t, []string{"greet"}, reg.Commands())
}

func TestHandlerRequiresStringName(t *testing.T) {
	h := Handler(newDefaultLocal(t))

	_, err := h(context.Background(), invoke.Args{})
	assert.ErrorIs(t, err, invoke.ErrInvalidArgs)

	_, err = h(context.Background(), invoke.Args{"name": 42})
	assert.ErrorIs(t, err, invoke.ErrInvalidArgs)
}

func TestHandlerPassesGreeterError(t *testing.T) {
	boom := errors.New("backend down")
	h := Handler(GreeterFunc(func(ctx context.Context, name string) (string, error) {
		return "", boom
	}))

	_, err := h(context.Background(), invoke.Args{"name": "x"})
	assert.ErrorIs(t, err, boom)
}

func TestInstrumentCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	fail := true
	g := Instrument(GreeterFunc(func(ctx context.Context, name string) (string, error) {
		if fail {
			return "", errors.New("nope")
		}
		return "hi " + name, nil
	}), m)

	_, err = g.Greet(context.Background(), "a")
	assert.Error(t, err)

	fail = false
	got, err := g.Greet(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "hi b", got)
	_, _ = g.Greet(context.Background(), "c")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.calls.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.calls.WithLabelValues("error")))
	n, err := testutil.GatherAndCount(reg, "greetdeck_greet_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewMetricsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
