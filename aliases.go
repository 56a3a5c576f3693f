package gocommex

import (
	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/rest"
)

type (
	// Re-export catalog and pipeline types so most callers only import gocommex.
	OrderSide     = catalog.OrderSide
	OrderType     = catalog.OrderType
	TimeInForce   = catalog.TimeInForce
	Interval      = catalog.Interval
	TransferType  = catalog.TransferType
	ResponseType  = catalog.ResponseType
	PositionSide  = catalog.PositionSide
	MarginType    = catalog.MarginType
	Params        = rest.Params
	Response      = rest.Response
	ErrorType     = rest.ErrorType
	ExchangeError = rest.ExchangeError
)

const (
	OrderSideBuy  = catalog.OrderSideBuy
	OrderSideSell = catalog.OrderSideSell

	OrderTypeLimit           = catalog.OrderTypeLimit
	OrderTypeMarket          = catalog.OrderTypeMarket
	OrderTypeStopLoss        = catalog.OrderTypeStopLoss
	OrderTypeStopLossLimit   = catalog.OrderTypeStopLossLimit
	OrderTypeTakeProfit      = catalog.OrderTypeTakeProfit
	OrderTypeTakeProfitLimit = catalog.OrderTypeTakeProfitLimit

	TimeInForceGTC = catalog.TimeInForceGTC
	TimeInForceIOC = catalog.TimeInForceIOC
	TimeInForceFOK = catalog.TimeInForceFOK
	TimeInForceGTX = catalog.TimeInForceGTX

	ErrorTypeConfiguration          = rest.ErrorTypeConfiguration
	ErrorTypeInvalidArgument        = rest.ErrorTypeInvalidArgument
	ErrorTypeAuthenticationRequired = rest.ErrorTypeAuthenticationRequired
	ErrorTypeTransport              = rest.ErrorTypeTransport
	ErrorTypeExchangeRejected       = rest.ErrorTypeExchangeRejected
	ErrorTypeCancelled              = rest.ErrorTypeCancelled
)

// NewParams creates an empty parameter set for Client.Call.
func NewParams() *Params {
	return rest.NewParams()
}

func AsExchangeError(err error) (*ExchangeError, bool) {
	return rest.AsExchangeError(err)
}

func IsConfigurationError(err error) bool {
	return rest.IsConfigurationError(err)
}

func IsInvalidArgument(err error) bool {
	return rest.IsInvalidArgument(err)
}

func IsAuthenticationRequired(err error) bool {
	return rest.IsAuthenticationRequired(err)
}

func IsTransportError(err error) bool {
	return rest.IsTransportError(err)
}

func IsExchangeRejected(err error) bool {
	return rest.IsExchangeRejected(err)
}

func IsCancelled(err error) bool {
	return rest.IsCancelled(err)
}

func IsRateLimitError(err error) bool {
	return rest.IsRateLimitError(err)
}

func IsRetriable(err error) bool {
	return rest.IsRetriable(err)
}
