package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of a failed call
type ErrorType string

const (
	// ErrorTypeConfiguration represents missing or invalid credentials and client settings
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeInvalidArgument represents malformed or out-of-range caller input
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"

	// ErrorTypeAuthenticationRequired represents a signed call attempted without an identity
	ErrorTypeAuthenticationRequired ErrorType = "authentication_required"

	// ErrorTypeTransport represents network-level failures (DNS, TLS, timeouts, refused connections)
	ErrorTypeTransport ErrorType = "transport"

	// ErrorTypeExchangeRejected represents a non-2xx response from the exchange
	ErrorTypeExchangeRejected ErrorType = "exchange_rejected"

	// ErrorTypeCancelled represents a call abandoned because the caller's context ended
	ErrorTypeCancelled ErrorType = "cancelled"
)

// ExchangeError is the error type returned by every stage of the request pipeline.
type ExchangeError struct {
	Type    ErrorType
	Code    string
	Message string
	// StatusCode and RawResponse are set for ErrorTypeExchangeRejected.
	StatusCode  int
	RawResponse []byte
	// ExchangeCode is the numeric "code" field of the exchange error payload, when present.
	ExchangeCode int
	Timestamp    time.Time
	Retriable    bool
	Cause        error
}

// Error returns the error message
func (e *ExchangeError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s:%s] %s (HTTP %d)", e.Type, e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error
func (e *ExchangeError) Unwrap() error {
	return e.Cause
}

// IsRetriable reports whether repeating the call could succeed. The library never retries;
// this is a hint for callers that implement their own policy.
func (e *ExchangeError) IsRetriable() bool {
	return e.Retriable
}

// Body returns the raw exchange payload as text.
func (e *ExchangeError) Body() string {
	return string(e.RawResponse)
}

// ParseJSON parses the error body as JSON
func (e *ExchangeError) ParseJSON(v interface{}) error {
	return json.Unmarshal(e.RawResponse, v)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeConfiguration,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(code, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeInvalidArgument,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewAuthenticationRequiredError creates an error for a signed call made without credentials
func NewAuthenticationRequiredError(endpoint string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeAuthenticationRequired,
		Code:      "identity_missing",
		Message:   fmt.Sprintf("endpoint %s requires API credentials", endpoint),
		Timestamp: time.Now(),
	}
}

// NewTransportError creates a new transport error
func NewTransportError(message string, cause error) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeTransport,
		Code:      "transport_failure",
		Message:   message,
		Timestamp: time.Now(),
		Retriable: true,
		Cause:     cause,
	}
}

// NewCancelledError creates an error for a call whose context ended before completion
func NewCancelledError(message string, cause error) *ExchangeError {
	code := "cancelled"
	if errors.Is(cause, context.DeadlineExceeded) {
		code = "deadline_exceeded"
	}
	return &ExchangeError{
		Type:      ErrorTypeCancelled,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// exchangePayload is the error body shape used by the exchange: {"code":-1121,"msg":"Invalid symbol."}
type exchangePayload struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// NewExchangeRejectedError creates an error for a non-2xx response. The body is kept verbatim.
func NewExchangeRejectedError(statusCode int, body []byte) *ExchangeError {
	retriable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	code := fmt.Sprintf("http_%d", statusCode)

	// Categorize common HTTP errors
	switch {
	case statusCode == http.StatusTooManyRequests:
		code = "rate_limit_exceeded"
	case statusCode == http.StatusTeapot:
		code = "ip_banned"
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		code = "authentication_failed"
	case statusCode == http.StatusBadRequest:
		code = "invalid_request"
	case statusCode >= http.StatusInternalServerError:
		code = "server_error"
	}

	message := string(body)
	var payload exchangePayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		message = payload.Msg
	}

	return &ExchangeError{
		Type:         ErrorTypeExchangeRejected,
		Code:         code,
		Message:      message,
		StatusCode:   statusCode,
		RawResponse:  body,
		ExchangeCode: payload.Code,
		Timestamp:    time.Now(),
		Retriable:    retriable,
	}
}

// AsExchangeError extracts an *ExchangeError from err's chain.
func AsExchangeError(err error) (*ExchangeError, bool) {
	var exchangeErr *ExchangeError
	if err == nil || !errors.As(err, &exchangeErr) {
		return nil, false
	}
	return exchangeErr, true
}

func hasType(err error, t ErrorType) bool {
	exchangeErr, ok := AsExchangeError(err)
	return ok && exchangeErr.Type == t
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool { return hasType(err, ErrorTypeConfiguration) }

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool { return hasType(err, ErrorTypeInvalidArgument) }

// IsAuthenticationRequired checks if the error reports missing credentials
func IsAuthenticationRequired(err error) bool {
	return hasType(err, ErrorTypeAuthenticationRequired)
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool { return hasType(err, ErrorTypeTransport) }

// IsExchangeRejected checks if the exchange answered with a non-2xx status
func IsExchangeRejected(err error) bool { return hasType(err, ErrorTypeExchangeRejected) }

// IsCancelled checks if the call was cancelled by its context
func IsCancelled(err error) bool { return hasType(err, ErrorTypeCancelled) }

// IsRateLimitError checks if the exchange rejected the call for exceeding request limits
func IsRateLimitError(err error) bool {
	exchangeErr, ok := AsExchangeError(err)
	return ok && exchangeErr.Type == ErrorTypeExchangeRejected &&
		(exchangeErr.Code == "rate_limit_exceeded" || exchangeErr.Code == "ip_banned")
}

// IsRetriable checks if the error is retriable
func IsRetriable(err error) bool {
	exchangeErr, ok := AsExchangeError(err)
	return ok && exchangeErr.IsRetriable()
}
