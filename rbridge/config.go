package rbridge

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven session configuration. Functional options
// on NewSession override whatever the environment provided.
type Config struct {
	// Rscript is the executable to invoke; resolved via PATH when relative.
	Rscript string `env:"WVSD_RSCRIPT" envDefault:"Rscript"`
	// LibPaths, when set, is exported as R_LIBS_USER for the invocation.
	LibPaths []string `env:"WVSD_RLIBS" envSeparator:":"`
	// Timeout bounds each invocation; zero disables the bound.
	Timeout time.Duration `env:"WVSD_TIMEOUT" envDefault:"2m"`
}

// ConfigFromEnv parses Config from WVSD_* variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("rbridge: parse environment: %w", err)
	}
	return cfg, nil
}
