package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
)

// ErrorMapper maps errors coming out of provider SDKs onto the dispatch taxonomy
type ErrorMapper interface {
	MapError(err error) error
	Category(err error) string
}

// DefaultErrorMapper classifies by error type first and falls back to message text
type DefaultErrorMapper struct{}

// NewDefaultErrorMapper creates a new error mapper
func NewDefaultErrorMapper() *DefaultErrorMapper {
	return &DefaultErrorMapper{}
}

// MapError returns err unchanged when it already carries a category, otherwise wraps it
// with the category inferred from its type or message.
func (m *DefaultErrorMapper) MapError(err error) error {
	if err == nil {
		return nil
	}

	if m.Category(err) != "Unknown" {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request interrupted: %w: %w", ErrTransport, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("network error: %w: %w", ErrTransport, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("network error: %w: %w", ErrTransport, err)
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("connection closed early: %w: %w", ErrTransport, err)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "api key"), strings.Contains(errStr, "credential"), strings.Contains(errStr, "unknown provider"):
		return fmt.Errorf("configuration: %w: %w", ErrConfiguration, err)

	case strings.Contains(errStr, "status code"), strings.Contains(errStr, "unauthorized"), strings.Contains(errStr, "rate limit"),
		strings.Contains(errStr, "quota"), strings.Contains(errStr, "forbidden"), strings.Contains(errStr, "bad request"):
		return fmt.Errorf("upstream rejected request: %w: %w", ErrUpstream, err)

	case strings.Contains(errStr, "connection"), strings.Contains(errStr, "unreachable"), strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "timeout"):
		return fmt.Errorf("network error: %w: %w", ErrTransport, err)

	case strings.Contains(errStr, "invalid character"), strings.Contains(errStr, "unexpected end of json"), strings.Contains(errStr, "no choices"):
		return fmt.Errorf("unreadable response: %w: %w", ErrMalformedResponse, err)

	default:
		return fmt.Errorf("upstream failure: %w: %w", ErrUpstream, err)
	}
}

// Category returns the taxonomy name for an error
func (m *DefaultErrorMapper) Category(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrConfiguration):
		return "ErrConfiguration"
	case errors.Is(err, ErrTransport):
		return "ErrTransport"
	case errors.Is(err, ErrUpstream):
		return "ErrUpstream"
	case errors.Is(err, ErrMalformedResponse):
		return "ErrMalformedResponse"
	default:
		return "Unknown"
	}
}
