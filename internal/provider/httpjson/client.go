package httpjson

import (
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent identifies tonneli to the city backends.
const DefaultUserAgent = "tonneli/0.1"

// headerTransport sets identification headers on every request.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return t.base.RoundTrip(req)
}

// NewClient creates an *http.Client shared read-only by all providers.
// timeout is the per-request deadline (0 = no timeout).
// userAgent falls back to DefaultUserAgent when blank.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: http.DefaultTransport, userAgent: userAgent},
	}
}
