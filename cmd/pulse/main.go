package main

import (
	"os"

	"github.com/stockpulse/backend/cmd/pulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
