// Command triplegen enumerates primitive Pythagorean triples in order of
// hypotenuse and runs puzzle filters over them, from the command line or as
// an HTTP service.
package main

import (
	"context"
	"os"

	"github.com/agbru/triplegen/internal/app"
	apperrors "github.com/agbru/triplegen/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) > 1 && app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
