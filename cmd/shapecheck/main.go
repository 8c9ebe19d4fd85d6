package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SimonDaKappa/go-shape/internal/app"
	"github.com/SimonDaKappa/go-shape/internal/cli"
)

// main is the entrypoint for the shapecheck application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stdin, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		if !errors.Is(err, app.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, inR io.Reader, errW io.Writer, args []string) error {
	defaults, err := app.LoadEnv()
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	appConfig, shouldExit, err := cli.Parse(args, defaults, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	shapeApp, err := app.NewApp(outW, inR, errW, appConfig)
	if err != nil {
		return err
	}
	return shapeApp.Run(context.Background())
}
