package main

import (
	"os"

	"github.com/SteveGJones/Active-Meeting-Listener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
