package main

import (
	"os"

	"github.com/rustyeddy/sentry/cmd/sentry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
