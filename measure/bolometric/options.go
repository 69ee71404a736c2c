package bolometric

import (
	"log/slog"

	"github.com/cwbudde/algo-photometry/measure/blackbody"
)

// Config defines the bolometric estimation settings.
type Config struct {
	// LambdaCutAA enables the missing-flux boost for a cutoff
	// wavelength in angstrom. Zero disables the boost.
	LambdaCutAA float64

	// ExtinctionMag is the bolometric dust extinction in magnitudes.
	ExtinctionMag float64

	// BlackbodyOptions are forwarded to the underlying fit.
	BlackbodyOptions []blackbody.Option

	// Logger receives diagnostics.
	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logger: slog.Default(),
	}
}

// WithLambdaCut enables the missing-flux boost with the given cutoff
// wavelength in angstrom.
func WithLambdaCut(lambdaAA float64) Option {
	return func(cfg *Config) {
		if lambdaAA > 0 {
			cfg.LambdaCutAA = lambdaAA
		}
	}
}

// WithExtinction sets the bolometric extinction in magnitudes.
func WithExtinction(mag float64) Option {
	return func(cfg *Config) {
		cfg.ExtinctionMag = mag
	}
}

// WithBlackbody forwards options to the underlying blackbody fit.
func WithBlackbody(opts ...blackbody.Option) Option {
	return func(cfg *Config) {
		cfg.BlackbodyOptions = append(cfg.BlackbodyOptions, opts...)
	}
}

// WithLogger sets the diagnostics logger. It also becomes the default
// logger of the underlying blackbody fit unless overridden there.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
