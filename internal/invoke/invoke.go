// Package invoke implements the named-command call boundary between a
// presentation surface and its backend. A command is looked up by name and
// receives its arguments as a map of named values.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCommand is returned when no handler is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
	// ErrInvalidArgs is returned when a command argument is missing or has the wrong type.
	ErrInvalidArgs = errors.New("invalid arguments")
)

// Args holds the named arguments of a single invocation.
type Args map[string]any

// String returns the named argument as a string.
// The empty string is a valid value; only a missing key or a non-string value fails.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidArgs, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidArgs, key, v)
	}
	return s, nil
}

// Handler executes one command.
type Handler func(ctx context.Context, args Args) (any, error)

// Invoker calls a command by name.
type Invoker interface {
	Invoke(ctx context.Context, command string, args Args) (any, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, command string, args Args) (any, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, command string, args Args) (any, error) {
	return f(ctx, command, args)
}

// CommandError wraps a failure returned by a command handler.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Registry maps command names to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a command name.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" || h == nil {
		return fmt.Errorf("register %q: name and handler are required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.handlers[name] = h
	return nil
}

// Invoke runs the named command. Handler failures come back as *CommandError.
func (r *Registry) Invoke(ctx context.Context, command string, args Args) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[command]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	if args == nil {
		args = Args{}
	}

	result, err := h(ctx, args)
	if err != nil {
		return nil, &CommandError{Command: command, Err: err}
	}
	return result, nil
}

// Commands returns the registered command names in sorted order.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
