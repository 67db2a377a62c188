package commands

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the defaults of every command, read from the environment.
// Flags given on the command line take precedence.
type Config struct {
	Res      float64 `env:"SKYGEOM_RES"       envDefault:"1"`
	DecCut   float64 `env:"SKYGEOM_DEC_CUT"   envDefault:"90"`
	Layout   string  `env:"SKYGEOM_LAYOUT"    envDefault:"fullsky"`
	Workers  int     `env:"SKYGEOM_WORKERS"   envDefault:"0"`
	LogLevel string  `env:"SKYGEOM_LOG_LEVEL" envDefault:"warn"`
}

// LoadConfig parses the SKYGEOM_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
