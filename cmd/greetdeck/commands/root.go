package commands

import (
	"github.com/spf13/cobra"

	"github.com/greetdeck/greetdeck/internal/app"
	"github.com/greetdeck/greetdeck/internal/config"
	"github.com/greetdeck/greetdeck/internal/logging"
)

var (
	cfgPath string
	wire    *app.Wire
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "greetdeck",
		Short:         "Greeting app: desktop page, browser server and CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configManager().Load()
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}

			wire, err = app.NewWire(cfg, log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			err := wire.Close()
			wire = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.greetdeck/config.toml)")

	root.AddCommand(greetCmd(), serveCmd(), versionCmd(), configCmd())
	return root
}

func configManager() *config.Manager {
	if cfgPath != "" {
		return config.NewManagerAt(cfgPath)
	}
	return config.NewManager()
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
