package transport

import "errors"

var (
	// ErrInvalidProxy is returned when the proxy URL cannot be parsed or
	// has no host.
	ErrInvalidProxy = errors.New("invalid proxy url: expected socks5://host:port")

	// ErrUnsupportedProxyScheme is returned for proxy schemes other than
	// socks5 and socks5h.
	ErrUnsupportedProxyScheme = errors.New("unsupported proxy scheme: only socks5 is supported")
)
