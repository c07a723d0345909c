package streamchat

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Option customises a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. to target a regional cluster.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient supplies a custom transport, e.g. with a tuned connection
// pool or proxy settings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger routes the client's debug output to the given logger instead of
// the process-wide standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxInFlight caps how many requests an AsyncClient keeps on the wire at
// once; additional calls queue until a slot frees up.
func WithMaxInFlight(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxInFlight = n
		}
	}
}
