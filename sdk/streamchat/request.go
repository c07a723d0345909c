package streamchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// requestSpec is the transport-independent description of one API call. Both
// the blocking and the asynchronous executor feed specs through the same
// builder so their wire behaviour cannot drift apart.
type requestSpec struct {
	method string
	path   string
	params map[string]any
	body   any
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// encodeParam serializes a query parameter value. Booleans become lowercase
// "true"/"false", which is what the API expects; non-scalar values are sent
// as JSON.
func encodeParam(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.RawMessage:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		if raw, err := json.Marshal(t); err == nil {
			return string(raw)
		}
		return fmt.Sprint(t)
	}
}

// buildRequest assembles the HTTP request for a spec: the default api_key
// parameter with caller overrides on top, the auth headers and, for
// body-carrying verbs, the serialized JSON payload.
func (c *Client) buildRequest(ctx context.Context, spec requestSpec) (*http.Request, error) {
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	for k, v := range spec.params {
		values.Set(k, encodeParam(v))
	}

	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(spec.path, "/") + "?" + values.Encode()

	var body io.Reader
	if methodHasBody(spec.method) {
		payload, err := serializeBody(spec.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.applyAuthHeaders(req.Header)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// applyAuthHeaders sets the credential and client identification headers
// shared by JSON and multipart requests.
func (c *Client) applyAuthHeaders(h http.Header) {
	h.Set("X-Stream-Client", userAgent())
	h.Set("Authorization", c.authToken)
	h.Set("stream-auth-type", "jwt")
}

func serializeBody(data any) ([]byte, error) {
	switch t := data.(type) {
	case nil:
		return []byte("{}"), nil
	case json.RawMessage:
		return t, nil
	case []byte:
		return t, nil
	default:
		return json.Marshal(t)
	}
}

// classifyResponse turns a raw HTTP reply into a Response envelope or a
// classified error. Decode failures win over status interpretation so the
// raw text is never lost.
func classifyResponse(body []byte, headers http.Header, statusCode int) (*Response, error) {
	decoded := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, &APIError{StatusCode: statusCode, RawBody: string(body)}
		}
	}
	if statusCode >= 399 {
		return nil, newAPIError(body, statusCode)
	}
	return newResponse(decoded, body, headers, statusCode), nil
}
