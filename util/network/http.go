package network

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHttpClient returns new HTTP client.
//
// <insecure> disables TLS certificate verification.
//
// <timeout> is a time limit for requests made by returned client.
func NewHttpClient(insecure bool, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: insecure,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
