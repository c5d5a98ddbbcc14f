package session

import "log/slog"

type Option func(*Store)

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets metrics
func WithMetrics(metrics *Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// WithListener subscribes listener before hydration
func WithListener(listener Listener) Option {
	return func(s *Store) {
		s.Subscribe(listener)
	}
}
