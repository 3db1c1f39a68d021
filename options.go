package mcpserializer

import "log/slog"

// Option customizes a Serializer.
type Option func(*Serializer)

// WithPageSize sets the page size used by all list methods. Values below 1
// are ignored.
func WithPageSize(size int) Option {
	return func(s *Serializer) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithLogHandler installs the slog handler used for dispatch logging. A nil
// handler discards all output.
func WithLogHandler(h slog.Handler) Option {
	return func(s *Serializer) {
		s.logHandler = h
	}
}
