// Package greeting provides the backends that turn a name into a greeting
// and binds them to the "greet" command.
package greeting

import (
	"context"
	"errors"
	"strings"
)

// DefaultTemplate is the greeting produced by the local backend.
const DefaultTemplate = "Hello, {name}! You've been greeted from Go!"

// placeholder marks where the name goes in a template.
const placeholder = "{name}"

// ErrInvalidTemplate is returned for a template without a {name} placeholder.
var ErrInvalidTemplate = errors.New("greeting template must contain {name}")

// Greeter turns a name into a greeting.
type Greeter interface {
	Greet(ctx context.Context, name string) (string, error)
}

// GreeterFunc adapts a plain function to the Greeter interface.
type GreeterFunc func(ctx context.Context, name string) (string, error)

// Greet calls f.
func (f GreeterFunc) Greet(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Local formats greetings in-process.
type Local struct {
	template string
}

// NewLocal creates a local greeter. An empty template selects DefaultTemplate.
func NewLocal(template string) (*Local, error) {
	if template == "" {
		template = DefaultTemplate
	}
	if !strings.Contains(template, placeholder) {
		return nil, ErrInvalidTemplate
	}
	return &Local{template: template}, nil
}

// Greet substitutes name into the template verbatim, including the empty name.
func (l *Local) Greet(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.ReplaceAll(l.template, placeholder, name), nil
}
