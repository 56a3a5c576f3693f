package gocommex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/rest"
)

// FuturesClient exposes the USDT-margined futures market.
type FuturesClient struct {
	*Client
}

// NewFuturesClient creates a futures market client.
func NewFuturesClient(opts ...Option) (*FuturesClient, error) {
	c, err := NewClient(catalog.Futures(), opts...)
	if err != nil {
		return nil, err
	}
	return &FuturesClient{Client: c}, nil
}

// FuturesOrder describes a new futures order.
type FuturesOrder struct {
	Symbol           string
	Side             catalog.OrderSide
	PositionSide     catalog.PositionSide
	Type             catalog.OrderType
	TimeInForce      catalog.TimeInForce
	Quantity         *decimal.Decimal
	ReduceOnly       *bool
	Price            *decimal.Decimal
	NewClientOrderID string
	StopPrice        *decimal.Decimal
	NewOrderRespType catalog.ResponseType
}

// FundingRateRequest filters the funding rate history.
type FundingRateRequest struct {
	Symbol    string
	StartTime time.Time
	EndTime   time.Time
	Limit     *int
}

// UserTradesQuery pages through the account's futures fills of a symbol.
type UserTradesQuery struct {
	Symbol    string
	StartTime time.Time
	EndTime   time.Time
	FromID    *int64
	Limit     *int
}

// IncomeRequest filters the income history.
type IncomeRequest struct {
	Symbol     string
	IncomeType string
	StartTime  time.Time
	EndTime    time.Time
	Limit      *int
}

// HistoricalTrades returns older market trades, starting at fromID when set.
func (c *FuturesClient) HistoricalTrades(ctx context.Context, symbol string, limit *int, fromID *int64) (string, error) {
	params := rest.NewParams().
		Add("symbol", symbol).
		OptInt("limit", limit).
		OptInt64("fromId", fromID)
	return c.call(ctx, catalog.OpHistoricalTrades, params)
}

// IndexPriceKlines returns index price candlesticks. req.Symbol is the pair, e.g. BTCUSDT.
func (c *FuturesClient) IndexPriceKlines(ctx context.Context, req KlinesRequest) (string, error) {
	return c.call(ctx, catalog.OpIndexPriceKlines, klineParams("pair", req))
}

// MarkPriceKlines returns mark price candlesticks.
func (c *FuturesClient) MarkPriceKlines(ctx context.Context, req KlinesRequest) (string, error) {
	return c.call(ctx, catalog.OpMarkPriceKlines, klineParams("symbol", req))
}

// PremiumIndex returns mark price and funding rate. An empty symbol returns every symbol.
func (c *FuturesClient) PremiumIndex(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpPremiumIndex, rest.NewParams().OptString("symbol", symbol))
}

// FundingRate returns the funding rate history.
func (c *FuturesClient) FundingRate(ctx context.Context, req FundingRateRequest) (string, error) {
	params := rest.NewParams().
		OptString("symbol", req.Symbol).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("limit", req.Limit)
	return c.call(ctx, catalog.OpFundingRate, params)
}

// OpenInterest returns the open interest of symbol.
func (c *FuturesClient) OpenInterest(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpOpenInterest, rest.NewParams().Add("symbol", symbol))
}

// NewOrder places a futures order. Signed.
func (c *FuturesClient) NewOrder(ctx context.Context, order FuturesOrder) (string, error) {
	params := rest.NewParams().
		Add("symbol", order.Symbol).
		AddEnum("side", order.Side).
		OptEnum("positionSide", order.PositionSide).
		AddEnum("type", order.Type).
		OptEnum("timeInForce", order.TimeInForce).
		OptDecimal("quantity", order.Quantity).
		OptBool("reduceOnly", order.ReduceOnly).
		OptDecimal("price", order.Price).
		OptString("newClientOrderId", order.NewClientOrderID).
		OptDecimal("stopPrice", order.StopPrice).
		OptEnum("newOrderRespType", order.NewOrderRespType)
	return c.call(ctx, catalog.OpNewOrder, params)
}

// CancelOrder cancels one open order. Signed.
func (c *FuturesClient) CancelOrder(ctx context.Context, ref OrderRef) (string, error) {
	return c.call(ctx, catalog.OpCancel, orderRefParams(ref))
}

// CancelAllOpenOrders cancels every open order of symbol. Signed.
func (c *FuturesClient) CancelAllOpenOrders(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpCancelAllOpenOrders, rest.NewParams().Add("symbol", symbol))
}

// Balance returns futures wallet balances. Signed.
func (c *FuturesClient) Balance(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpBalance, nil)
}

// PositionRisk returns position information. An empty symbol returns every position. Signed.
func (c *FuturesClient) PositionRisk(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpPositionRisk, rest.NewParams().OptString("symbol", symbol))
}

// ChangeLeverage sets the initial leverage of symbol, 1 to 125. Signed.
func (c *FuturesClient) ChangeLeverage(ctx context.Context, symbol string, leverage int) (string, error) {
	return c.call(ctx, catalog.OpLeverage, rest.NewParams().Add("symbol", symbol).AddInt("leverage", leverage))
}

// ChangeMarginType switches symbol between isolated and crossed margin. Signed.
func (c *FuturesClient) ChangeMarginType(ctx context.Context, symbol string, marginType catalog.MarginType) (string, error) {
	return c.call(ctx, catalog.OpMarginType, rest.NewParams().Add("symbol", symbol).AddEnum("marginType", marginType))
}

// UserTrades returns the account's trades of a symbol. Signed.
func (c *FuturesClient) UserTrades(ctx context.Context, q UserTradesQuery) (string, error) {
	params := rest.NewParams().
		Add("symbol", q.Symbol).
		OptTime("startTime", q.StartTime).
		OptTime("endTime", q.EndTime).
		OptInt64("fromId", q.FromID).
		OptInt("limit", q.Limit)
	return c.call(ctx, catalog.OpUserTrades, params)
}

// Income returns realized PnL, funding fees and other income entries. Signed.
func (c *FuturesClient) Income(ctx context.Context, req IncomeRequest) (string, error) {
	params := rest.NewParams().
		OptString("symbol", req.Symbol).
		OptString("incomeType", req.IncomeType).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("limit", req.Limit)
	return c.call(ctx, catalog.OpIncome, params)
}
