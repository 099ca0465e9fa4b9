package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"github.com/greetdeck/greetdeck/internal/greeting"
	"github.com/greetdeck/greetdeck/internal/invoke"
	"github.com/greetdeck/greetdeck/internal/logging"
)

var (
	// ErrClosed is the failure recorded on calls dropped by Close.
	ErrClosed = errors.New("surface closed")
	// ErrUnexpectedResult is returned when the greet command yields a non-string.
	ErrUnexpectedResult = errors.New("greet returned a non-string result")
	// ErrBackendPanic wraps a panic raised by the invoker.
	ErrBackendPanic = errors.New("greet backend panicked")
)

// State is a snapshot of the page state.
type State struct {
	Input    string `json:"input"`
	Greeting string `json:"greeting"`
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger. The default discards.
func WithLogger(l logger.Logger) Option {
	return func(s *Surface) {
		s.log = l
	}
}

// WithContext sets the parent context of every greet call.
func WithContext(ctx context.Context) Option {
	return func(s *Surface) {
		s.parent = ctx
	}
}

// Surface owns the input and greeting state of one page.
type Surface struct {
	invoker invoke.Invoker
	log     logger.Logger
	parent  context.Context

	ctx    context.Context
	cancel context.CancelFunc

	// notifyMu serializes subscriber delivery so the last delivery always
	// carries the latest state.
	notifyMu sync.Mutex

	mu       sync.Mutex
	input    string
	greeting string
	closed   bool
	nextSub  int
	subs     map[int]func(State)
}

// New creates a surface that calls the greet command through inv.
func New(inv invoke.Invoker, opts ...Option) *Surface {
	s := &Surface{
		invoker: inv,
		log:     logging.Discard(),
		parent:  context.Background(),
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(s.parent)
	return s
}

// SetInput replaces the input text with the control's full current content.
func (s *Surface) SetInput(value string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.input = value
	s.mu.Unlock()

	s.notify()
}

// Submit cancels ev's default action and starts one greet call with the
// current input. It never blocks on the backend.
func (s *Surface) Submit(ev *SubmitEvent) *Call {
	if ev != nil {
		ev.PreventDefault()
	}

	s.mu.Lock()
	name := s.input
	closed := s.closed
	s.mu.Unlock()

	call := newCall(name)
	if closed {
		call.finish(CallDropped, "", ErrClosed)
		return call
	}

	s.log.Debug(fmt.Sprintf("greet call %s started", call.ID))
	go s.run(call)
	return call
}

func (s *Surface) run(call *Call) {
	result, err := s.greet(call.Name)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Debug(fmt.Sprintf("greet call %s dropped after close", call.ID))
		call.finish(CallDropped, "", ErrClosed)
		return
	}
	if err != nil {
		s.mu.Unlock()
		s.log.Warning(fmt.Sprintf("greet call %s failed: %v", call.ID, err))
		call.finish(CallRejected, "", err)
		return
	}
	s.greeting = result
	s.mu.Unlock()

	s.notify()
	call.finish(CallResolved, result, nil)
}

func (s *Surface) greet(name string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBackendPanic, r)
		}
	}()

	result, err := s.invoker.Invoke(s.ctx, greeting.Command, invoke.Args{greeting.NameArg: name})
	if err != nil {
		return "", err
	}
	text, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnexpectedResult, result)
	}
	return text, nil
}

// State returns the current snapshot.
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Input: s.input, Greeting: s.greeting}
}

// Input returns the current input text.
func (s *Surface) Input() string {
	return s.State().Input
}

// Greeting returns the current greeting text.
func (s *Surface) Greeting() string {
	return s.State().Greeting
}

// Subscribe registers fn to receive a snapshot after every change. fn must
// not call back into the surface's mutating methods synchronously.
func (s *Surface) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Surface) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	st := State{Input: s.input, Greeting: s.greeting}
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Close tears the surface down. Outstanding calls have their context
// cancelled and any result that still arrives is dropped. Close does not
// wait for the backend.
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.subs = make(map[int]func(State))
	s.mu.Unlock()

	s.cancel()
	return nil
}
