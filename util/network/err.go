package network

import (
	"crypto/tls"
	"net"
	"net/url"
	"syscall"
)

// ErrType represents network error type
type ErrType string

const (
	Nil ErrType = "Nil"

	// no such host
	NoSuchHost ErrType = "No such host"

	// http: server gave HTTP response to HTTPS client
	HTTPSClientHTTPServer ErrType = "HTTP response to HTTPS client"

	// x509: certificate signed by unknown authority
	BadCertificate ErrType = "Bad certificate"

	// No connection could be made because the target machine actively refused it
	Refused ErrType = "Connection refused"

	// context deadline exceeded (Client.Timeout exceeded while awaiting headers)
	Timeout ErrType = "Timeout"

	Unknown ErrType = "Unknown"
)

// GetErrType returns network error type of <err> or any error it wraps.
//
// Inspired by https://stackoverflow.com/a/67647035
func GetErrType(err error) ErrType {
	if err == nil {
		return Nil
	}
	for err != nil {
		if err, ok := err.(*net.DNSError); ok && err.IsNotFound {
			return NoSuchHost
		}
		if err, ok := err.(*url.Error); ok && err.Err != nil {
			if err.Err.Error() == "http: server gave HTTP response to HTTPS client" {
				return HTTPSClientHTTPServer
			}
		}
		if _, ok := err.(*tls.CertificateVerificationError); ok {
			return BadCertificate
		}
		if err, ok := err.(syscall.Errno); ok {
			if err == 10061 || err == syscall.ECONNREFUSED {
				return Refused
			}
		}
		if err, ok := err.(net.Error); ok && err.Timeout() {
			return Timeout
		}
		unwrap, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrap.Unwrap()
	}
	return Unknown
}
