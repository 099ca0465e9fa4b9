package main

import (
	"os"

	"github.com/greetdeck/greetdeck/cmd/greetdeck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
