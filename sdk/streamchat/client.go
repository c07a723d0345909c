package streamchat

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client is the blocking Stream Chat API client. A Client is safe for
// concurrent use: per-call state lives on the stack and the only pieces
// shared between calls are the signed credential and the transport's
// connection pool.
type Client struct {
	apiKey      string
	apiSecret   string
	baseURL     string
	timeout     time.Duration
	maxInFlight int64
	authToken   string
	http        *http.Client
	logger      *log.Logger
}

// New builds a Client and mints its server credential. The credential is
// immutable for the lifetime of the client; per-user tokens are issued with
// CreateToken.
func New(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, &UsageError{Op: "new client", Reason: "api key and api secret are required"}
	}
	c := &Client{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		maxInFlight: defaultMaxInFlight,
		http:        &http.Client{},
		logger:      log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	token, err := serverToken(apiSecret)
	if err != nil {
		return nil, err
	}
	c.authToken = token
	return c, nil
}

// Close releases idle transport connections. In-flight calls are unaffected.
func (c *Client) Close() { c.http.CloseIdleConnections() }

// do executes one call end to end: build, dispatch, classify. Errors from
// the transport surface as-is; nothing is retried.
func (c *Client) do(ctx context.Context, spec requestSpec) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()[:8]
	c.logger.WithFields(log.Fields{
		"request_id": requestID,
		"method":     spec.method,
		"path":       spec.path,
	}).Debug("dispatch chat API request")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(log.Fields{
		"request_id": requestID,
		"status":     httpResp.StatusCode,
	}).Debug("chat API response received")

	return classifyResponse(body, httpResp.Header, httpResp.StatusCode)
}

// Get performs a GET against a relative API path.
func (c *Client) Get(ctx context.Context, path string, params map[string]any) (*Response, error) {
	return c.do(ctx, requestSpec{method: http.MethodGet, path: path, params: params})
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, params map[string]any, data any) (*Response, error) {
	return c.do(ctx, requestSpec{method: http.MethodPost, path: path, params: params, body: data})
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, params map[string]any, data any) (*Response, error) {
	return c.do(ctx, requestSpec{method: http.MethodPut, path: path, params: params, body: data})
}

// Patch performs a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, params map[string]any, data any) (*Response, error) {
	return c.do(ctx, requestSpec{method: http.MethodPatch, path: path, params: params, body: data})
}

// Delete performs a DELETE against a relative API path.
func (c *Client) Delete(ctx context.Context, path string, params map[string]any) (*Response, error) {
	return c.do(ctx, requestSpec{method: http.MethodDelete, path: path, params: params})
}
