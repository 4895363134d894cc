package vecdist

type options struct {
	logger *Logger
}

// Option configures NewCosine.
type Option func(*options)

// WithLogger sets the logger used to report setup.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		logger: NoopLogger(),
	}
}
