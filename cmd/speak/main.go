package main

import (
	"os"

	"github.com/apresai/speak/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
