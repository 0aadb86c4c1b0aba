// Package main is the CLI command itself.
package main

import (
	"os"

	"github.com/edaniels/golog"

	planarcli "go.armlab.dev/planar/cli"
)

func main() {
	app := planarcli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		golog.Global().Fatal(err)
	}
}
