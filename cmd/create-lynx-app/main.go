package main

import (
	"os"

	"github.com/lynx-community/create-lynx-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
