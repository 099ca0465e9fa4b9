package greeting

import (
	"context"

	"github.com/greetdeck/greetdeck/internal/invoke"
)

const (
	// Command is the name the surface invokes.
	Command = "greet"
	// NameArg is the single named argument of Command.
	NameArg = "name"
)

// Handler adapts g to an invoke.Handler reading the "name" argument.
func Handler(g Greeter) invoke.Handler {
	return func(ctx context.Context, args invoke.Args) (any, error) {
		name, err := args.String(NameArg)
		if err != nil {
			return nil, err
		}
		return g.Greet(ctx, name)
	}
}

// Register binds g to the greet command on reg.
func Register(reg *invoke.Registry, g Greeter) error {
	return reg.Register(Command, Handler(g))
}
