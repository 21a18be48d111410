package main

import (
	"context"
	"os"

	"github.com/agbru/logmap/internal/app"
	apperrors "github.com/agbru/logmap/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		os.Stderr.WriteString("logmap: " + err.Error() + "\n")
		os.Exit(apperrors.ExitCode(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
