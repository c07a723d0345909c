package streamchat

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// RateLimitInfo reports the call quota attached to a response.
type RateLimitInfo struct {
	// Limit is the total allowed calls in the current window.
	Limit int64
	// Remaining is the number of calls left in the current window.
	Remaining int64
	// Reset is the UTC instant at which the window resets.
	Reset time.Time
}

// Response wraps a decoded JSON body together with transport metadata.
type Response struct {
	body       map[string]any
	raw        []byte
	headers    http.Header
	statusCode int
	rateLimit  *RateLimitInfo
}

func newResponse(decoded map[string]any, raw []byte, headers http.Header, statusCode int) *Response {
	return &Response{
		body:       decoded,
		raw:        raw,
		headers:    headers,
		statusCode: statusCode,
		rateLimit:  parseRateLimit(headers),
	}
}

// IsOK reports whether the response status signals success.
func (r *Response) IsOK() bool { return r.statusCode >= 200 && r.statusCode < 400 }

// StatusCode returns the transport status code.
func (r *Response) StatusCode() int { return r.statusCode }

// Headers returns the raw response headers.
func (r *Response) Headers() http.Header { return r.headers }

// RateLimit returns quota information, or nil when the server sent no
// rate-limit headers.
func (r *Response) RateLimit() *RateLimitInfo { return r.rateLimit }

// Data returns the decoded body.
func (r *Response) Data() map[string]any { return r.body }

// Get looks up a top-level body key.
func (r *Response) Get(key string) (any, bool) {
	v, ok := r.body[key]
	return v, ok
}

// Path resolves a gjson path against the raw body, e.g. "channel.id".
func (r *Response) Path(path string) gjson.Result { return gjson.GetBytes(r.raw, path) }

// Raw returns the undecoded body bytes.
func (r *Response) Raw() []byte { return r.raw }

// parseRateLimit reads the three quota headers. Rate limit info is only
// reported when all three are present; malformed-but-present values collapse
// to zero rather than surfacing an error.
func parseRateLimit(headers http.Header) *RateLimitInfo {
	if headers == nil {
		return nil
	}
	limit := headers.Get("x-ratelimit-limit")
	remaining := headers.Get("x-ratelimit-remaining")
	reset := headers.Get("x-ratelimit-reset")
	if limit == "" || remaining == "" || reset == "" {
		return nil
	}
	return &RateLimitInfo{
		Limit:     cleanHeaderValue(limit),
		Remaining: cleanHeaderValue(remaining),
		Reset:     time.Unix(cleanHeaderValue(reset), 0).UTC(),
	}
}

// cleanHeaderValue extracts the first non-empty token from a possibly
// comma-joined header value. Proxies occasionally fold repeated headers into
// one comma-separated string.
func cleanHeaderValue(value string) int64 {
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
