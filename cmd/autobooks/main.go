package main

import (
	"os"

	"github.com/autobooks/autobooks_app/cmd/autobooks/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
