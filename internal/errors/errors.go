package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes a dispatch can hit.
var (
	// ErrConfiguration - credential missing, unknown provider or unusable settings; nothing was sent
	ErrConfiguration = errors.New("configuration error")

	// ErrTransport - request never got a response (DNS, refused connection, TLS, cancelled)
	ErrTransport = errors.New("transport error")

	// ErrUpstream - provider answered with a non-2xx status (auth, quota, bad request, outage)
	ErrUpstream = errors.New("upstream error")

	// ErrMalformedResponse - provider answered 2xx but the body had nothing usable
	ErrMalformedResponse = errors.New("malformed response")
)

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", message, err)
}

// WrapWithCategory keeps the original error in the chain and tags it with a category.
func WrapWithCategory(err error, message string, category error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w: %w", message, category, err)
}

// IsCategory checks if error belongs to specific category
func IsCategory(err error, category error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, category)
}

// Configuration wraps message as a configuration error
func Configuration(message string) error {
	return fmt.Errorf("%s: %w", message, ErrConfiguration)
}

// Transport wraps message as a transport error
func Transport(message string) error {
	return fmt.Errorf("%s: %w", message, ErrTransport)
}

// Upstream wraps message as an upstream error
func Upstream(message string) error {
	return fmt.Errorf("%s: %w", message, ErrUpstream)
}

// MalformedResponse wraps message as a malformed response error
func MalformedResponse(message string) error {
	return fmt.Errorf("%s: %w", message, ErrMalformedResponse)
}
