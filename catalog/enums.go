package catalog

import "fmt"

// OrderSide represents the side of an order
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderType represents the type of an order
type OrderType string

const (
	OrderTypeLimit           OrderType = "LIMIT"
	OrderTypeMarket          OrderType = "MARKET"
	OrderTypeStopLoss        OrderType = "STOP_LOSS"
	OrderTypeStopLossLimit   OrderType = "STOP_LOSS_LIMIT"
	OrderTypeTakeProfit      OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitLimit OrderType = "TAKE_PROFIT_LIMIT"
)

// TimeInForce represents the time in force of an order
type TimeInForce string

const (
	// TimeInForceGTC represents Good Till Canceled
	TimeInForceGTC TimeInForce = "GTC"
	// TimeInForceIOC represents Immediate Or Cancel
	TimeInForceIOC TimeInForce = "IOC"
	// TimeInForceFOK represents Fill Or Kill
	TimeInForceFOK TimeInForce = "FOK"
	// TimeInForceGTX represents Good Till Crossing (post only)
	TimeInForceGTX TimeInForce = "GTX"
)

// Interval is a kline/candlestick interval.
type Interval string

const (
	Interval1Minute  Interval = "1m"
	Interval3Minute  Interval = "3m"
	Interval5Minute  Interval = "5m"
	Interval15Minute Interval = "15m"
	Interval30Minute Interval = "30m"
	Interval1Hour    Interval = "1h"
	Interval2Hour    Interval = "2h"
	Interval4Hour    Interval = "4h"
	Interval6Hour    Interval = "6h"
	Interval8Hour    Interval = "8h"
	Interval12Hour   Interval = "12h"
	Interval1Day     Interval = "1d"
	Interval3Day     Interval = "3d"
	Interval1Week    Interval = "1w"
	Interval1Month   Interval = "1M"
)

// TransferType is the direction of an internal asset transfer between wallets.
type TransferType string

const (
	TransferMainToFuture    TransferType = "MAIN_FUTURE"
	TransferFutureToMain    TransferType = "FUTURE_MAIN"
	TransferMainToFunding   TransferType = "MAIN_FUNDING"
	TransferFundingToMain   TransferType = "FUNDING_MAIN"
	TransferFundingToFuture TransferType = "FUNDING_FUTURE"
	TransferFutureToFunding TransferType = "FUTURE_FUNDING"
)

// ResponseType selects how much detail a new-order response carries.
type ResponseType string

const (
	ResponseTypeAck    ResponseType = "ACK"
	ResponseTypeResult ResponseType = "RESULT"
	ResponseTypeFull   ResponseType = "FULL"
)

// PositionSide is the futures position leg an order applies to.
type PositionSide string

const (
	PositionSideBoth  PositionSide = "BOTH"
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

// MarginType is the futures margin mode of a symbol.
type MarginType string

const (
	MarginTypeIsolated MarginType = "ISOLATED"
	MarginTypeCrossed  MarginType = "CROSSED"
)

var (
	orderSides    = []OrderSide{OrderSideBuy, OrderSideSell}
	orderTypes    = []OrderType{OrderTypeLimit, OrderTypeMarket, OrderTypeStopLoss, OrderTypeStopLossLimit, OrderTypeTakeProfit, OrderTypeTakeProfitLimit}
	timesInForce  = []TimeInForce{TimeInForceGTC, TimeInForceIOC, TimeInForceFOK, TimeInForceGTX}
	intervals     = []Interval{Interval1Minute, Interval3Minute, Interval5Minute, Interval15Minute, Interval30Minute, Interval1Hour, Interval2Hour, Interval4Hour, Interval6Hour, Interval8Hour, Interval12Hour, Interval1Day, Interval3Day, Interval1Week, Interval1Month}
	transferTypes = []TransferType{TransferMainToFuture, TransferFutureToMain, TransferMainToFunding, TransferFundingToMain, TransferFundingToFuture, TransferFutureToFunding}
	responseTypes = []ResponseType{ResponseTypeAck, ResponseTypeResult, ResponseTypeFull}
	positionSides = []PositionSide{PositionSideBoth, PositionSideLong, PositionSideShort}
	marginTypes   = []MarginType{MarginTypeIsolated, MarginTypeCrossed}
)

func (s OrderSide) String() string    { return string(s) }
func (t OrderType) String() string    { return string(t) }
func (t TimeInForce) String() string  { return string(t) }
func (i Interval) String() string     { return string(i) }
func (t TransferType) String() string { return string(t) }
func (t ResponseType) String() string { return string(t) }
func (s PositionSide) String() string { return string(s) }
func (t MarginType) String() string   { return string(t) }

func (s OrderSide) Valid() bool    { return contains(orderSides, s) }
func (t OrderType) Valid() bool    { return contains(orderTypes, t) }
func (t TimeInForce) Valid() bool  { return contains(timesInForce, t) }
func (i Interval) Valid() bool     { return contains(intervals, i) }
func (t TransferType) Valid() bool { return contains(transferTypes, t) }
func (t ResponseType) Valid() bool { return contains(responseTypes, t) }
func (s PositionSide) Valid() bool { return contains(positionSides, s) }
func (t MarginType) Valid() bool   { return contains(marginTypes, t) }

// ParseOrderSide converts a wire string to OrderSide
func ParseOrderSide(s string) (OrderSide, error) { return parse(orderSides, s, "order side") }

// ParseOrderType converts a wire string to OrderType
func ParseOrderType(s string) (OrderType, error) { return parse(orderTypes, s, "order type") }

// ParseTimeInForce converts a wire string to TimeInForce
func ParseTimeInForce(s string) (TimeInForce, error) {
	return parse(timesInForce, s, "time in force")
}

// ParseInterval converts a wire string such as "15m" or "1M" to Interval
func ParseInterval(s string) (Interval, error) { return parse(intervals, s, "interval") }

// ParseTransferType converts a wire string to TransferType
func ParseTransferType(s string) (TransferType, error) {
	return parse(transferTypes, s, "transfer type")
}

// ParseResponseType converts a wire string to ResponseType
func ParseResponseType(s string) (ResponseType, error) {
	return parse(responseTypes, s, "response type")
}

// ParsePositionSide converts a wire string to PositionSide
func ParsePositionSide(s string) (PositionSide, error) {
	return parse(positionSides, s, "position side")
}

// ParseMarginType converts a wire string to MarginType
func ParseMarginType(s string) (MarginType, error) { return parse(marginTypes, s, "margin type") }

// Intervals returns every kline interval in ascending order.
func Intervals() []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals)
	return out
}

func contains[T ~string](set []T, v T) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}

// parse is case-sensitive: "1m" and "1M" are different intervals.
func parse[T ~string](set []T, s, what string) (T, error) {
	v := T(s)
	if !contains(set, v) {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", what, s)
	}
	return v, nil
}

func wireValues[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
