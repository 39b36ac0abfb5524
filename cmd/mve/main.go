package main

import (
	"os"

	"github.com/LinusVanElswijk/mve/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
