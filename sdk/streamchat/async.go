package streamchat

import (
	"context"
	"net/http"

	"golang.org/x/sync/semaphore"
)

const defaultMaxInFlight = 32

// AsyncClient is the non-blocking executor. Calls return immediately with a
// Future; request building, dispatch and classification are shared with the
// blocking Client, so the two variants interpret statuses, classify errors
// and shape envelopes identically.
type AsyncClient struct {
	client *Client
	sem    *semaphore.Weighted
}

// NewAsync builds an AsyncClient. WithMaxInFlight bounds how many requests
// may be on the wire at once; further calls queue on the semaphore.
func NewAsync(apiKey, apiSecret string, opts ...Option) (*AsyncClient, error) {
	client, err := New(apiKey, apiSecret, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: client, sem: semaphore.NewWeighted(client.maxInFlight)}, nil
}

// Close releases the underlying transport.
func (a *AsyncClient) Close() { a.client.Close() }

// Client returns the blocking twin sharing the credential and transport.
func (a *AsyncClient) Client() *Client { return a.client }

// Future is the pending result of an asynchronous call.
type Future struct {
	done chan struct{}
	resp *Response
	err  error
}

// Wait blocks until the call completes or ctx is done.
func (f *Future) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.resp, f.err
	}
}

func (a *AsyncClient) dispatch(ctx context.Context, spec requestSpec) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := a.sem.Acquire(ctx, 1); err != nil {
			f.err = err
			return
		}
		defer a.sem.Release(1)
		f.resp, f.err = a.client.do(ctx, spec)
	}()
	return f
}

// Get performs a GET against a relative API path.
func (a *AsyncClient) Get(ctx context.Context, path string, params map[string]any) *Future {
	return a.dispatch(ctx, requestSpec{method: http.MethodGet, path: path, params: params})
}

// Post performs a POST with a JSON body.
func (a *AsyncClient) Post(ctx context.Context, path string, params map[string]any, data any) *Future {
	return a.dispatch(ctx, requestSpec{method: http.MethodPost, path: path, params: params, body: data})
}

// Put performs a PUT with a JSON body.
func (a *AsyncClient) Put(ctx context.Context, path string, params map[string]any, data any) *Future {
	return a.dispatch(ctx, requestSpec{method: http.MethodPut, path: path, params: params, body: data})
}

// Patch performs a PATCH with a JSON body.
func (a *AsyncClient) Patch(ctx context.Context, path string, params map[string]any, data any) *Future {
	return a.dispatch(ctx, requestSpec{method: http.MethodPatch, path: path, params: params, body: data})
}

// Delete performs a DELETE against a relative API path.
func (a *AsyncClient) Delete(ctx context.Context, path string, params map[string]any) *Future {
	return a.dispatch(ctx, requestSpec{method: http.MethodDelete, path: path, params: params})
}
