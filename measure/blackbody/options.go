package blackbody

import (
	"log/slog"
	"runtime"
)

// Config defines the blackbody estimation settings.
type Config struct {
	// DistanceCm is the luminosity distance to the transient in cm.
	DistanceCm float64

	// BinWidthDays is the epoch bin width in the time unit of the
	// series, typically days.
	BinWidthDays float64

	// MinFilters is the minimum number of measurements a bin needs
	// before a fit is attempted.
	MinFilters int

	// TInitK and RInitCm seed the fit.
	TInitK  float64
	RInitCm float64

	// MaxFuncEvals caps the model evaluations per epoch fit.
	MaxFuncEvals int

	// UseEffectiveWavelength forces the effective-wavelength
	// approximation for bandpass data modes.
	UseEffectiveWavelength bool

	// Workers is the number of concurrent epoch fits.
	Workers int

	// Logger receives diagnostics.
	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DistanceCm:   1e27,
		BinWidthDays: 1.0,
		MinFilters:   3,
		TInitK:       1e4,
		RInitCm:      1e15,
		MaxFuncEvals: 1000,
		Workers:      runtime.GOMAXPROCS(0),
		Logger:       slog.Default(),
	}
}

// WithDistance sets the luminosity distance in cm.
func WithDistance(distanceCm float64) Option {
	return func(cfg *Config) {
		if distanceCm > 0 {
			cfg.DistanceCm = distanceCm
		}
	}
}

// WithBinWidth sets the epoch bin width in days.
func WithBinWidth(widthDays float64) Option {
	return func(cfg *Config) {
		if widthDays > 0 {
			cfg.BinWidthDays = widthDays
		}
	}
}

// WithMinFilters sets the minimum number of measurements per bin.
func WithMinFilters(minFilters int) Option {
	return func(cfg *Config) {
		if minFilters > 0 {
			cfg.MinFilters = minFilters
		}
	}
}

// WithInitialGuess sets the starting temperature and radius for the fit.
func WithInitialGuess(tempK, radiusCm float64) Option {
	return func(cfg *Config) {
		if tempK > 0 {
			cfg.TInitK = tempK
		}

		if radiusCm > 0 {
			cfg.RInitCm = radiusCm
		}
	}
}

// WithMaxFuncEvals sets the per-epoch model evaluation cap.
func WithMaxFuncEvals(maxFuncEvals int) Option {
	return func(cfg *Config) {
		if maxFuncEvals > 0 {
			cfg.MaxFuncEvals = maxFuncEvals
		}
	}
}

// WithEffectiveWavelength forces the effective-wavelength approximation
// even for bandpass data modes.
func WithEffectiveWavelength() Option {
	return func(cfg *Config) {
		cfg.UseEffectiveWavelength = true
	}
}

// WithWorkers sets the number of concurrent epoch fits.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithLogger sets the diagnostics logger.
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
