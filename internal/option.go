package internal

// Option configures the application entrypoint.
type Option func(*options)

type options struct {
	config *Config
}

// WithConfig overrides the loaded configuration. Useful for tests.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
