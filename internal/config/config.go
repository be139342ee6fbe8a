package config

import (
	"time"

	"github.com/somnolab/hypnogram-backend/internal/sim"
)

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	// CORSOrigins is the allow-list handed to the CORS middleware; the
	// comparison front-end runs on the usual local dev ports by default.
	CORSOrigins []string `yaml:"cors_origins"`
}

type Config struct {
	Env  string     `yaml:"env"`
	HTTP HTTPConfig `yaml:"http"`

	// Calibration overrides the engine's constant table; zero fields keep
	// the current model defaults.
	Calibration sim.Calibration `yaml:"calibration"`
}
