// Package desktop provides the Wails-bound application object of the
// greetdeck desktop window.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/greetdeck/greetdeck/internal/greeting"
	"github.com/greetdeck/greetdeck/internal/invoke"
	"github.com/greetdeck/greetdeck/internal/ui"
)

// Version is set at build time via ldflags
var Version = "0.1.0-dev"

// StateEvent carries a ui.State to the frontend after every surface change.
const StateEvent = "surface:state"

// ErrURLNotAllowed is returned by OpenURL for anything but a logo link.
var ErrURLNotAllowed = errors.New("url not allowed")

// Package-level hooks for testing. In production these are the Wails runtime.
var (
	eventsEmit     = runtime.EventsEmit
	browserOpenURL = runtime.BrowserOpenURL
)

// App struct holds the application state
type App struct {
	mu  sync.RWMutex
	ctx context.Context

	invoker invoke.Invoker
	greeter greeting.Greeter
	log     logger.Logger
	surface *ui.Surface
}

// NewApp creates a new App application struct. The window's surface calls
// the greet command through inv. Greet goes straight to g, or through inv
// when g is nil.
func NewApp(inv invoke.Invoker, g greeting.Greeter, log logger.Logger) *App {
	a := &App{
		invoker: inv,
		greeter: g,
		log:     log,
		surface: ui.New(inv, ui.WithLogger(log)),
	}
	a.surface.Subscribe(a.emitState)
	return a
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()
	a.log.Debug("desktop app started")
}

// Shutdown is called when the window closes. Outstanding greet calls are dropped.
func (a *App) Shutdown(ctx context.Context) {
	_ = a.surface.Close()
	a.log.Debug("desktop app stopped")
}

func (a *App) context() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// emitState forwards a surface snapshot to the frontend. Events raised before
// Startup have nowhere to go and are skipped.
func (a *App) emitState(st ui.State) {
	a.mu.RLock()
	ctx := a.ctx
	a.mu.RUnlock()
	if ctx == nil {
		return
	}
	eventsEmit(ctx, StateEvent, st)
}

// GetVersion returns the application version
func (a *App) GetVersion() string {
	return Version
}

// Greet calls the greeting backend.
func (a *App) Greet(name string) (string, error) {
	ctx := a.context()
	if a.greeter != nil {
		return a.greeter.Greet(ctx, name)
	}

	result, err := a.invoker.Invoke(ctx, greeting.Command, invoke.Args{greeting.NameArg: name})
	if err != nil {
		return "", err
	}
	text, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ui.ErrUnexpectedResult, result)
	}
	return text, nil
}

// OpenURL opens one of the page's logo links in the system browser.
func (a *App) OpenURL(url string) error {
	for _, logo := range ui.Logos() {
		if logo.Href == url {
			browserOpenURL(a.context(), url)
			return nil
		}
	}
	a.log.Warning(fmt.Sprintf("refusing to open %q", url))
	return fmt.Errorf("%w: %s", ErrURLNotAllowed, url)
}

// Invoke runs any registered command by name.
func (a *App) Invoke(command string, args map[string]interface{}) (interface{}, error) {
	return a.invoker.Invoke(a.context(), command, invoke.Args(args))
}

// SetInput records the input control's full current value.
func (a *App) SetInput(value string) {
	a.surface.SetInput(value)
}

// Submit starts a greet call with the current input and returns its ID.
// The result arrives as a StateEvent.
func (a *App) Submit() string {
	return a.surface.Submit(ui.NewSubmitEvent()).ID
}

// GetState returns the current surface state.
func (a *App) GetState() ui.State {
	return a.surface.State()
}
