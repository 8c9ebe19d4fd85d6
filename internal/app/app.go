package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	shape "github.com/SimonDaKappa/go-shape"
)

// ErrValidationFailed is returned by Run when at least one input did not
// conform. The individual failures have already been reported.
var ErrValidationFailed = errors.New("validation failed")

// stdinName is how standard input is reported.
const stdinName = "<stdin>"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	inR      io.Reader
	logger   *slog.Logger
	registry *shape.Registry
	config   *Config
}

// NewApp is the constructor for the main application. Results are written
// to outW, logs to logW, and inR is read when no files are configured.
func NewApp(outW io.Writer, inR io.Reader, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg, err := shape.NewRegistry(shape.RegistryOpts{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	return &App{
		outW:     outW,
		inR:      inR,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

// Run compiles the configured expression and checks every input against
// it, reporting each result. It keeps going after a failed or unreadable
// input and returns ErrValidationFailed at the end if any failed.
func (a *App) Run(ctx context.Context) error {
	v, err := a.registry.Compile(a.config.TypeExpr, a.config.bindingValues())
	if err != nil {
		return fmt.Errorf("invalid type expression: %w", err)
	}
	a.logger.Debug("Type expression compiled.", "expr", a.config.TypeExpr)

	inputs := a.config.Files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	failed := 0
	for _, name := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, displayName, err := a.read(name)
		if err != nil {
			failed++
			a.logger.Warn("Input unreadable.", "input", displayName, "error", err)
			fmt.Fprintf(a.outW, "%s: FAIL\n%s\n", displayName, indent(err.Error()))
			continue
		}

		if err := shape.ValidateSource(v, a.source(displayName, data)); err != nil {
			failed++
			a.logger.Info("Input rejected.", "input", displayName, "error", err)
			fmt.Fprintf(a.outW, "%s: FAIL\n%s\n", displayName, indent(err.Error()))
			continue
		}
		a.logger.Debug("Input accepted.", "input", displayName)
		fmt.Fprintf(a.outW, "%s: ok\n", displayName)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrValidationFailed, failed, len(inputs))
	}
	return nil
}

func (a *App) read(name string) ([]byte, string, error) {
	if name == "-" {
		data, err := io.ReadAll(a.inR)
		if err != nil {
			return nil, stdinName, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, stdinName, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, name, fmt.Errorf("failed to read input: %w", err)
	}
	return data, name, nil
}

// source wraps an input in the decoder for its format.
func (a *App) source(name string, data []byte) shape.Source {
	format := a.config.Format
	if format == FormatAuto {
		format = formatFromExt(name)
	}
	switch format {
	case FormatYAML:
		return shape.YAMLSource{Data: data, Path: a.config.Path}
	case FormatHCL:
		return shape.HCLSource{Data: data, Filename: name, Path: a.config.Path}
	default:
		return shape.JSONSource{Data: data, Path: a.config.Path}
	}
}

func formatFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
