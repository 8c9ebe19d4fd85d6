package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
)

// Input formats.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// TypeExpr is the validator expression every input is checked against.
	TypeExpr string
	// Path is an optional gjson path selecting the checked part of each input.
	Path string
	// Bindings are name=value pairs the expression may refer to. Values are
	// JSON; anything that is not valid JSON is taken as a plain string.
	Bindings map[string]string
	// Files are the inputs. No files means standard input.
	Files []string
	// Format is the input document format: json, yaml, hcl, or auto to pick
	// by file extension (standard input is read as JSON).
	Format    string
	LogFormat string
	LogLevel  string
}

// EnvConfig holds the defaults read from the environment (and an optional
// .env file) before flags are applied.
type EnvConfig struct {
	TypeExpr  string `env:"SHAPECHECK_TYPE"`
	Path      string `env:"SHAPECHECK_PATH"`
	Format    string `env:"SHAPECHECK_FORMAT" envDefault:"auto"`
	LogFormat string `env:"SHAPECHECK_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"SHAPECHECK_LOG_LEVEL" envDefault:"warn"`
}

// LoadEnv reads EnvConfig from the process environment. A .env file in the
// working directory is loaded first when present.
func LoadEnv() (EnvConfig, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// NewConfig validates cfg and returns a copy ready for NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if strings.TrimSpace(cfg.TypeExpr) == "" {
		return nil, errors.New("a validator expression is required (-type or SHAPECHECK_TYPE)")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatAuto
	case FormatAuto, FormatJSON, FormatYAML, FormatHCL:
	default:
		return nil, fmt.Errorf("invalid input format %q: must be 'auto', 'json', 'yaml', or 'hcl'", cfg.Format)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	for name := range cfg.Bindings {
		if name == "" {
			return nil, errors.New("binding names cannot be empty")
		}
	}

	return &cfg, nil
}

// bindingValues decodes the raw binding values.
func (c *Config) bindingValues() map[string]any {
	out := make(map[string]any, len(c.Bindings))
	for name, raw := range c.Bindings {
		if gjson.Valid(raw) {
			out[name] = gjson.Parse(raw).Value()
			continue
		}
		out[name] = raw
	}
	return out
}
