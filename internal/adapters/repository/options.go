package repository

import "github.com/okian/livescore/pkg/logger"

type options struct {
	name     string
	capacity int
	logger   logger.Logger
}

// Option applies a configuration option to a MemoryStore.
type Option func(*options)

// WithName labels the store in metrics and logs.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithCapacity pre-sizes the backing map.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
