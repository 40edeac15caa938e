package schooldata

import "log/slog"

// Option configures Client (functional options pattern).
type Option func(*Client)

// WithLogger sets the logger for adapter-level diagnostics. Default is
// slog.Default(). If l is nil, the default is left unchanged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
