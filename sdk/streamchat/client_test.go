package streamchat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type capturedRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

// newTestServer records the last request and answers with a fixed reply.
func newTestServer(t *testing.T, status int, respBody string, respHeaders map[string]string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.header = r.Header.Clone()
		captured.body = body
		for k, v := range respHeaders {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	client, err := New("test-key", "test-secret", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(client.Close)
	return client, captured
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New("", "secret"); err == nil {
		t.Fatal("New(empty key) error = nil, want UsageError")
	}
	if _, err := New("key", ""); err == nil {
		t.Fatal("New(empty secret) error = nil, want UsageError")
	}
}

func TestRequestCarriesAPIKeyAndCallerParams(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)

	if _, err := client.Get(context.Background(), "users", map[string]any{"presence": true, "limit": 25}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := captured.query.Get("api_key"); got != "test-key" {
		t.Fatalf("api_key = %q, want %q", got, "test-key")
	}
	if got := captured.query.Get("presence"); got != "true" {
		t.Fatalf("presence = %q, want %q", got, "true")
	}
	if got := captured.query.Get("limit"); got != "25" {
		t.Fatalf("limit = %q, want %q", got, "25")
	}
}

func TestCallerParamOverridesDefault(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)

	if _, err := client.Get(context.Background(), "users", map[string]any{"api_key": "override"}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := captured.query.Get("api_key"); got != "override" {
		t.Fatalf("api_key = %q, want %q", got, "override")
	}
}

func TestRequestAuthHeaders(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)

	if _, err := client.Get(context.Background(), "app", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got := captured.header.Get("stream-auth-type"); got != "jwt" {
		t.Fatalf("stream-auth-type = %q, want %q", got, "jwt")
	}
	if got := captured.header.Get("X-Stream-Client"); got != userAgent() {
		t.Fatalf("X-Stream-Client = %q, want %q", got, userAgent())
	}
	if got := captured.header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q, want %q", got, "application/json")
	}

	claims, err := VerifyClaims(captured.header.Get("Authorization"), "test-secret")
	if err != nil {
		t.Fatalf("VerifyClaims() error = %v", err)
	}
	if server, ok := claims["server"].(bool); !ok || !server {
		t.Fatalf("server claim = %v, want true", claims["server"])
	}
}

func TestBodyOnlyForBodyVerbs(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)
	ctx := context.Background()

	if _, err := client.Get(ctx, "users", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(captured.body) != 0 {
		t.Fatalf("GET body = %q, want empty", captured.body)
	}

	if _, err := client.Delete(ctx, "users/u1", nil); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(captured.body) != 0 {
		t.Fatalf("DELETE body = %q, want empty", captured.body)
	}

	if _, err := client.Post(ctx, "users", nil, nil); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if string(captured.body) != "{}" {
		t.Fatalf("POST nil body = %q, want %q", captured.body, "{}")
	}

	if _, err := client.Put(ctx, "blocklists/bad", nil, map[string]any{"words": []string{"x"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if string(captured.body) != `{"words":["x"]}` {
		t.Fatalf("PUT body = %q, want %q", captured.body, `{"words":["x"]}`)
	}
}

func TestStructuredAPIError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusBadRequest, `{"code": 17, "message": "boom", "duration": "0.2ms"}`, nil)

	_, err := client.Get(context.Background(), "app", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if !apiErr.Structured {
		t.Fatal("Structured = false, want true")
	}
	if apiErr.Code != 17 || apiErr.Message != "boom" {
		t.Fatalf("Code, Message = %d, %q, want 17, %q", apiErr.Code, apiErr.Message, "boom")
	}
	if apiErr.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("HTTPStatus() = %d, want %d", apiErr.HTTPStatus(), http.StatusBadRequest)
	}
	if apiErr.Error() != "stream-chat error code 17: boom" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}

func TestNestedErrorShape(t *testing.T) {
	client, _ := newTestServer(t, http.StatusForbidden, `{"data": {"code": 99, "message": "denied"}}`, nil)

	_, err := client.Get(context.Background(), "app", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != 99 || apiErr.Message != "denied" {
		t.Fatalf("Code, Message = %d, %q, want 99, %q", apiErr.Code, apiErr.Message, "denied")
	}
}

func TestUnstructuredErrorPreservesBody(t *testing.T) {
	client, _ := newTestServer(t, http.StatusInternalServerError, "<html>gateway timeout</html>", nil)

	_, err := client.Get(context.Background(), "app", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Structured {
		t.Fatal("Structured = true, want false")
	}
	if apiErr.RawBody != "<html>gateway timeout</html>" {
		t.Fatalf("RawBody = %q", apiErr.RawBody)
	}
	if apiErr.Error() != "stream-chat error HTTP code: 500" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, "not json at all", nil)

	_, err := client.Get(context.Background(), "app", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Structured {
		t.Fatal("Structured = true, want false")
	}
	if apiErr.RawBody != "not json at all" {
		t.Fatalf("RawBody = %q", apiErr.RawBody)
	}
}

func TestEmptySuccessBody(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, "", nil)

	resp, err := client.Get(context.Background(), "app", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !resp.IsOK() {
		t.Fatal("IsOK() = false, want true")
	}
	if len(resp.Data()) != 0 {
		t.Fatalf("Data() = %v, want empty", resp.Data())
	}
}

func TestUsageErrorSkipsTransport(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	client, err := New("test-key", "test-secret", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	_, err = client.DeleteUsers(context.Background(), nil, "hard", nil)
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want *UsageError", err)
	}
	if hit {
		t.Fatal("server was hit, want preflight rejection")
	}
}
