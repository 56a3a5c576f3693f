package gocommex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/rest"
)

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v, for optional 64-bit fields such as ids.
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Decimal returns a pointer to v, for optional price and quantity fields.
func Decimal(v decimal.Decimal) *decimal.Decimal { return &v }

// KlinesRequest selects a candlestick series. Optional fields are omitted when zero or nil.
type KlinesRequest struct {
	Symbol    string
	Interval  catalog.Interval
	StartTime time.Time
	EndTime   time.Time
	Limit     *int
}

// AggTradesRequest selects compressed trades.
type AggTradesRequest struct {
	Symbol    string
	FromID    *int64
	StartTime time.Time
	EndTime   time.Time
	Limit     *int
}

// OrderRef identifies one order by exchange id or client id.
type OrderRef struct {
	Symbol            string
	OrderID           *int64
	OrigClientOrderID string
}

// AllOrdersRequest pages through the order history of a symbol.
type AllOrdersRequest struct {
	Symbol    string
	OrderID   *int64
	StartTime time.Time
	EndTime   time.Time
	Limit     *int
}

// Ping tests connectivity.
func (c *Client) Ping(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpPing, nil)
}

// ServerTime returns the exchange clock.
func (c *Client) ServerTime(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpServerTime, nil)
}

// ExchangeInfo returns trading rules and symbol information.
func (c *Client) ExchangeInfo(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpExchangeInfo, nil)
}

// Depth returns the order book of symbol.
func (c *Client) Depth(ctx context.Context, symbol string, limit *int) (string, error) {
	return c.call(ctx, catalog.OpDepth, rest.NewParams().Add("symbol", symbol).OptInt("limit", limit))
}

// Trades returns recent trades of symbol.
func (c *Client) Trades(ctx context.Context, symbol string, limit *int) (string, error) {
	return c.call(ctx, catalog.OpTrades, rest.NewParams().Add("symbol", symbol).OptInt("limit", limit))
}

// AggTrades returns compressed, aggregate trades.
func (c *Client) AggTrades(ctx context.Context, req AggTradesRequest) (string, error) {
	params := rest.NewParams().
		Add("symbol", req.Symbol).
		OptInt64("fromId", req.FromID).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("limit", req.Limit)
	return c.call(ctx, catalog.OpAggTrades, params)
}

// Klines returns candlesticks of a symbol.
func (c *Client) Klines(ctx context.Context, req KlinesRequest) (string, error) {
	return c.call(ctx, catalog.OpKlines, klineParams("symbol", req))
}

func klineParams(symbolParam string, req KlinesRequest) *rest.Params {
	return rest.NewParams().
		Add(symbolParam, req.Symbol).
		AddEnum("interval", req.Interval).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("limit", req.Limit)
}

// Ticker24hr returns rolling 24 hour statistics. An empty symbol returns every symbol.
func (c *Client) Ticker24hr(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpTicker24hr, rest.NewParams().OptString("symbol", symbol))
}

// TickerPrice returns the latest price. An empty symbol returns every symbol.
func (c *Client) TickerPrice(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpTickerPrice, rest.NewParams().OptString("symbol", symbol))
}

// BookTicker returns the best bid and ask. An empty symbol returns every symbol.
func (c *Client) BookTicker(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpBookTicker, rest.NewParams().OptString("symbol", symbol))
}

// Account returns account information. Signed.
func (c *Client) Account(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpAccount, nil)
}

// QueryOrder returns the status of one order. Signed.
func (c *Client) QueryOrder(ctx context.Context, ref OrderRef) (string, error) {
	return c.call(ctx, catalog.OpQueryOrder, orderRefParams(ref))
}

func orderRefParams(ref OrderRef) *rest.Params {
	return rest.NewParams().
		Add("symbol", ref.Symbol).
		OptInt64("orderId", ref.OrderID).
		OptString("origClientOrderId", ref.OrigClientOrderID)
}

// OpenOrders returns open orders. An empty symbol returns open orders of every symbol.
func (c *Client) OpenOrders(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpOpenOrders, rest.NewParams().OptString("symbol", symbol))
}

// AllOrders returns the order history of a symbol. Signed.
func (c *Client) AllOrders(ctx context.Context, req AllOrdersRequest) (string, error) {
	params := rest.NewParams().
		Add("symbol", req.Symbol).
		OptInt64("orderId", req.OrderID).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("limit", req.Limit)
	return c.call(ctx, catalog.OpAllOrders, params)
}
