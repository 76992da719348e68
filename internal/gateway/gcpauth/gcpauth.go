// Package gcpauth provides an HTTP client authorised with Application
// Default Credentials for the Vertex AI model gateway.
package gcpauth

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/auth/httptransport"
)

// CloudPlatformScope is the OAuth scope requested for Vertex AI.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// lazyTransport resolves credentials on first use, so a process without
// credentials can still start and report the failure per request.
type lazyTransport struct {
	once   sync.Once
	base   http.RoundTripper
	detect func() (http.RoundTripper, error)
	err    error
}

func (t *lazyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.once.Do(func() {
		t.base, t.err = t.detect()
	})
	if t.err != nil {
		return nil, t.err
	}
	return t.base.RoundTrip(req)
}

// NewClient returns an http.Client whose requests carry an access token from
// Application Default Credentials.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &lazyTransport{detect: func() (http.RoundTripper, error) {
			creds, err := credentials.DetectDefault(&credentials.DetectOptions{
				Scopes: []string{CloudPlatformScope},
			})
			if err != nil {
				return nil, fmt.Errorf("detecting default credentials: %w", err)
			}
			client, err := httptransport.NewClient(&httptransport.Options{Credentials: creds})
			if err != nil {
				return nil, fmt.Errorf("creating authorised transport: %w", err)
			}
			return client.Transport, nil
		}},
	}
}
