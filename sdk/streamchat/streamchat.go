// Package streamchat is a server-side client for the Stream Chat REST API.
//
// Every operation builds an authenticated HTTP request, dispatches it through
// a shared transport and wraps the decoded JSON reply in a Response envelope.
// The package exposes a blocking Client and a non-blocking AsyncClient; both
// feed the same request builder and response classifier, so their wire
// behaviour is identical.
package streamchat

import "time"

const (
	// Version is the library version reported in the X-Stream-Client header.
	Version = "1.0.0"

	// DefaultBaseURL is the production endpoint of the chat API.
	DefaultBaseURL = "https://chat.stream-io-api.com"

	// DefaultTimeout bounds a single request round trip.
	DefaultTimeout = 6 * time.Second
)

func userAgent() string { return "stream-go-client-" + Version }
