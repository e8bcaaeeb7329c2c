package main

import "github.com/boolean-maybe/tock/cmd"

// main hands off to the command line; without a subcommand it starts the TUI.
func main() {
	cmd.Execute()
}
