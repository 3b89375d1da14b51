package qbittorrent

import "time"

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout       time.Duration
	tlsSkipVerify bool
}

func defaultOptions() clientOptions {
	return clientOptions{timeout: 30 * time.Second}
}

// WithTimeout sets the HTTP timeout. It is rounded down to whole seconds,
// with a minimum of one.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables certificate verification.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.tlsSkipVerify = true
	}
}

func (o clientOptions) timeoutSeconds() int {
	return max(int(o.timeout/time.Second), 1)
}
