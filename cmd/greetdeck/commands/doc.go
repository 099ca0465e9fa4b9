// Package commands defines the greetdeck CLI and wires dependencies for subcommands.
//
// Commands
//
//   - greet [name]   Call the greet command once and print the result
//   - serve          Serve the greeting page to a browser
//   - version        Print the version
//
// # Implementation
//
// The root command loads the config file and builds the shared app.Wire
// (backend, command registry, metrics) before any subcommand runs, and
// closes it afterwards.
package commands
