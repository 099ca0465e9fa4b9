package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greetdeck/greetdeck/internal/desktop"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "greetdeck %s\n", desktop.Version)
			return nil
		},
	}
}
