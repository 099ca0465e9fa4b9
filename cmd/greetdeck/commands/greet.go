package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greetdeck/greetdeck/internal/greeting"
	"github.com/greetdeck/greetdeck/internal/invoke"
)

func greetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greet [name]",
		Short: "Greet a name (empty when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			result, err := wire.Commands.Invoke(cmd.Context(), greeting.Command, invoke.Args{greeting.NameArg: name})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	return cmd
}
