// @MX:ANCHOR: [AUTO] main is the folio CLI entry point; any command error exits with status 1.
package main

import (
	"os"

	"github.com/modu-ai/folio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
