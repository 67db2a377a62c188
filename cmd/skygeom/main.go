package main

import (
	"os"

	"github.com/owlpinetech/skymap/cmd/skygeom/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
