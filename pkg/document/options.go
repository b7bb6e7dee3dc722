package document

import "log/slog"

// Option configures document construction.
type Option func(*config)

type config struct {
	logger *slog.Logger
	hasher Hasher
}

func newConfig(options []Option) config {
	cfg := config{hasher: SHA1Hex}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.hasher == nil {
		cfg.hasher = SHA1Hex
	}
	return cfg
}

// WithLogger reports rejected containers at warn level. Documents are silent
// without one.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHasher replaces the SHA-1 digest used to seal and verify containers.
// Containers written with one hasher only load with the same hasher.
func WithHasher(h Hasher) Option {
	return func(cfg *config) {
		cfg.hasher = h
	}
}
