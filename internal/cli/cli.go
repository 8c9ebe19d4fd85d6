package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SimonDaKappa/go-shape/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// bindFlag collects repeated -bind name=value flags.
type bindFlag map[string]string

func (b bindFlag) String() string {
	pairs := make([]string, 0, len(b))
	for k, v := range b {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (b bindFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("binding %q must have the form name=value", s)
	}
	b[strings.TrimSpace(name)] = value
	return nil
}

// Parse processes command-line arguments on top of the environment
// defaults. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, defaults app.EnvConfig, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("shapecheck", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
shapecheck - Validate JSON, YAML and HCL documents against a validator expression.

Usage:
  shapecheck -type EXPR [options] [FILE...]

Arguments:
  FILE
    Documents to check. Standard input is read when none is given.

Examples:
  shapecheck -type 'list({"name": string, "port": range(1, 65535)})' servers.json
  shapecheck -type 'range(0, max)' -bind max=10 -path 'config.retries' app.json
  shapecheck -type '{"replicas": integer}' -format yaml < deploy.txt

Options:
`)
		flagSet.PrintDefaults()
	}

	bindings := bindFlag{}
	typeFlag := flagSet.String("type", defaults.TypeExpr, "Validator expression to check inputs against.")
	tFlag := flagSet.String("t", "", "Validator expression (shorthand).")
	pathFlag := flagSet.String("path", defaults.Path, "gjson path selecting the part of each input to check.")
	formatFlag := flagSet.String("format", defaults.Format, "Input format. Options: 'auto', 'json', 'yaml', 'hcl'.")
	flagSet.Var(bindings, "bind", "Bind a name used in the expression: name=value (value is JSON, else a string). Repeatable.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	typeExpr := *typeFlag
	if *tFlag != "" {
		typeExpr = *tFlag
	}

	if typeExpr == "" {
		slog.Debug("No type expression provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "missing -type"}
	}

	config, err := app.NewConfig(app.Config{
		TypeExpr:  typeExpr,
		Path:      *pathFlag,
		Bindings:  bindings,
		Files:     flagSet.Args(),
		Format:    strings.ToLower(*formatFlag),
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
