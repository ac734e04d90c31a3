package main

import (
	"os"

	"github.com/rustyeddy/fxreport/cmd/fxreport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
