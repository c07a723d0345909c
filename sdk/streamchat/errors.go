package streamchat

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// APIError is raised when a call fails: either the service answered with a
// failure status, or the body could not be decoded as JSON. Structured
// distinguishes the two cases.
type APIError struct {
	// StatusCode is the transport status code of the failed call.
	StatusCode int
	// RawBody preserves the response text verbatim.
	RawBody string
	// Code is the service error code, when the body was structured.
	Code int
	// Message is the service error message, when the body was structured.
	Message string
	// Structured is false when the body was not valid JSON.
	Structured bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Structured {
		return fmt.Sprintf("stream-chat error code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("stream-chat error HTTP code: %d", e.StatusCode)
}

// HTTPStatus returns the status code of the failed call.
func (e *APIError) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// newAPIError classifies a failure body. The service emits two error shapes,
// flat {code, message} and nested {data: {code, message}}; both are
// tolerated.
func newAPIError(body []byte, statusCode int) *APIError {
	apiErr := &APIError{StatusCode: statusCode, RawBody: string(body)}
	if !gjson.ValidBytes(body) {
		return apiErr
	}
	apiErr.Structured = true
	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		code = gjson.GetBytes(body, "data.code")
	}
	message := gjson.GetBytes(body, "message")
	if !message.Exists() {
		message = gjson.GetBytes(body, "data.message")
	}
	apiErr.Code = int(code.Int())
	apiErr.Message = message.String()
	return apiErr
}

// UsageError reports a caller-side contract violation detected before any
// request is sent.
type UsageError struct {
	// Op names the operation that rejected the call.
	Op string
	// Reason describes the violated requirement.
	Reason string
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.Op + ": " + e.Reason }
