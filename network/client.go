// Package network provides the HTTP layer shared by the landing-page and catalog API fetchers.
//
// Every request goes through Get or Page, which apply the per-request deadline
// and the single, logged certificate-verification degrade retry. Nothing here
// keeps mutable per-request state; callers thread their own headers.
package network

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Client is the shared HTTP client for catalog API communication.
// It is configured with increased concurrency limits and timeouts tailored for
// repeated small JSON requests against one host.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(false),
}

// insecureClient mirrors Client with certificate verification disabled.
// It is only ever used for the bounded degrade retry in Do.
var insecureClient = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(true),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport(insecure bool) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}
