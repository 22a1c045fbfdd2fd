package main

import (
	"os"

	"github.com/agiangrant/listview/cmd/listview/commands"
)

// Version information, overridden at build time via -ldflags.
var Version = "0.1.0"

func main() {
	commands.Version = Version
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
