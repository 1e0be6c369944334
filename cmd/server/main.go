package main

import (
	"os"

	"github.com/KonchadaBhuvan/my-pro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
