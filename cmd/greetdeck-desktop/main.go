package main

import (
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/greetdeck/greetdeck/internal/app"
	"github.com/greetdeck/greetdeck/internal/config"
	"github.com/greetdeck/greetdeck/internal/desktop"
	"github.com/greetdeck/greetdeck/internal/logging"
	"github.com/greetdeck/greetdeck/internal/web"
)

func main() {
	if err := run(); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewManager().Load()
	if err != nil {
		return err
	}

	// Detect development mode
	isDev := os.Getenv("WAILS_DEV") != "" || desktop.Version == "0.1.0-dev"

	logLevel := cfg.Log.Level
	if isDev {
		logLevel = "debug"
	}
	appLog, err := logging.New(logLevel, cfg.Log.File)
	if err != nil {
		return err
	}

	wire, err := app.NewWire(cfg, appLog)
	if err != nil {
		return err
	}
	defer wire.Close()

	deskApp := desktop.NewApp(wire.Commands, wire.Greeter, appLog)
	page := web.NewServer("", wire.Commands, web.WithLogger(appLog))

	return wails.Run(&options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Handler: page.Handler(),
		},
		BackgroundColour: desktop.Background(desktop.ResolveTheme(cfg.Window.Theme)),
		OnStartup:        deskApp.Startup,
		OnShutdown:       deskApp.Shutdown,
		Bind: []interface{}{
			deskApp,
		},
		Logger:             appLog,
		LogLevel:           appLog.Level(),
		LogLevelProduction: logger.ERROR,
		// Enable DevTools in development mode
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})
}
