package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single provider round trip. It is the only timeout
// a weather fetch has.
const DefaultTimeout = 30 * time.Second

const UserAgent = "weatherlookup/1.0"

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}
