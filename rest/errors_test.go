package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeErrorFormatting(t *testing.T) {
	err := NewExchangeRejectedError(http.StatusServiceUnavailable, []byte("maintenance"))
	assert.Equal(t, "[exchange_rejected:server_error] maintenance (HTTP 503)", err.Error())
	assert.True(t, err.IsRetriable())

	arg := NewInvalidArgumentError("out_of_range", "limit must be between 1 and 1000")
	assert.Equal(t, "[invalid_argument:out_of_range] limit must be between 1 and 1000", arg.Error())
}

func TestExchangeErrorHelpersSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("fetch account: %w", NewAuthenticationRequiredError("account"))
	assert.True(t, IsAuthenticationRequired(wrapped))
	assert.False(t, IsInvalidArgument(wrapped))
	assert.False(t, IsTransportError(errors.New("plain")))
	assert.False(t, IsRetriable(nil))
}

func TestCancelledErrorCodes(t *testing.T) {
	assert.Equal(t, "deadline_exceeded", NewCancelledError("x", context.DeadlineExceeded).Code)
	assert.Equal(t, "cancelled", NewCancelledError("x", context.Canceled).Code)
	assert.True(t, errors.Is(NewCancelledError("x", context.Canceled), context.Canceled))
}

func TestExchangeRejectedParseJSON(t *testing.T) {
	err := NewExchangeRejectedError(http.StatusTeapot, []byte(`{"code":-1003,"msg":"Way too many requests; IP banned."}`))
	assert.True(t, IsRateLimitError(err))

	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	require.NoError(t, err.ParseJSON(&payload))
	assert.Equal(t, -1003, payload.Code)

	plain := NewExchangeRejectedError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "<html>bad gateway</html>", plain.Message)
	assert.Equal(t, 0, plain.ExchangeCode)
}
