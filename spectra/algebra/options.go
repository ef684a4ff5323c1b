package algebra

import "github.com/cwbudde/algo-spectra/spectra/resample"

type config struct {
	quantity string
	name     string
	inplace  bool
	mode     resample.Mode
}

// Option configures an algebra operation.
type Option func(*config)

// WithQuantity names the quantity an operation acts on. Without it the
// operation requires the spectrum to hold exactly one quantity.
func WithQuantity(name string) Option {
	return func(cfg *config) {
		cfg.quantity = name
	}
}

// WithName sets the display name of the result.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithInplace commits the result into the first operand instead of
// returning a new spectrum.
func WithInplace() Option {
	return func(cfg *config) {
		cfg.inplace = true
	}
}

// WithMode selects the common-axis mode for two-spectrum operations
// (default: intersection of both ranges).
func WithMode(m resample.Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
