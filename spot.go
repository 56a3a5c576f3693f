package gocommex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/rest"
)

// SpotClient exposes the spot market: market data, orders, account and wallet.
type SpotClient struct {
	*Client
}

// NewSpotClient creates a spot market client.
func NewSpotClient(opts ...Option) (*SpotClient, error) {
	c, err := NewClient(catalog.Spot(), opts...)
	if err != nil {
		return nil, err
	}
	return &SpotClient{Client: c}, nil
}

// SpotOrder describes a new spot order. Which optional fields are needed depends on Type.
type SpotOrder struct {
	Symbol           string
	Side             catalog.OrderSide
	Type             catalog.OrderType
	TimeInForce      catalog.TimeInForce
	Quantity         *decimal.Decimal
	QuoteOrderQty    *decimal.Decimal
	Price            *decimal.Decimal
	NewClientOrderID string
	StopPrice        *decimal.Decimal
	IcebergQty       *decimal.Decimal
	NewOrderRespType catalog.ResponseType
}

func (o SpotOrder) params() *rest.Params {
	return rest.NewParams().
		Add("symbol", o.Symbol).
		AddEnum("side", o.Side).
		AddEnum("type", o.Type).
		OptEnum("timeInForce", o.TimeInForce).
		OptDecimal("quantity", o.Quantity).
		OptDecimal("quoteOrderQty", o.QuoteOrderQty).
		OptDecimal("price", o.Price).
		OptString("newClientOrderId", o.NewClientOrderID).
		OptDecimal("stopPrice", o.StopPrice).
		OptDecimal("icebergQty", o.IcebergQty).
		OptEnum("newOrderRespType", o.NewOrderRespType)
}

// OCOOrder describes a one-cancels-the-other order pair.
type OCOOrder struct {
	Symbol               string
	ListClientOrderID    string
	Side                 catalog.OrderSide
	Quantity             decimal.Decimal
	LimitClientOrderID   string
	Price                decimal.Decimal
	LimitIcebergQty      *decimal.Decimal
	StopClientOrderID    string
	StopPrice            decimal.Decimal
	StopLimitPrice       *decimal.Decimal
	StopIcebergQty       *decimal.Decimal
	StopLimitTimeInForce catalog.TimeInForce
	NewOrderRespType     catalog.ResponseType
}

// CancelOrderRequest identifies the spot order to cancel.
type CancelOrderRequest struct {
	OrderRef
	NewClientOrderID string
}

// TradesQuery pages through the account's fills of a symbol.
type TradesQuery struct {
	Symbol    string
	OrderID   *int64
	StartTime time.Time
	EndTime   time.Time
	FromID    *int64
	Limit     *int
}

// WithdrawRequest describes a withdrawal to an external address.
type WithdrawRequest struct {
	Coin            string
	WithdrawOrderID string
	Network         string
	Address         string
	AddressTag      string
	Amount          decimal.Decimal
	Name            string
}

// DepositHistoryRequest filters the deposit history.
type DepositHistoryRequest struct {
	Coin      string
	Status    *int
	StartTime time.Time
	EndTime   time.Time
	Offset    *int
	Limit     *int
}

// WithdrawHistoryRequest filters the withdrawal history.
type WithdrawHistoryRequest struct {
	Coin            string
	WithdrawOrderID string
	Status          *int
	Offset          *int
	Limit           *int
	StartTime       time.Time
	EndTime         time.Time
}

// TransferHistoryRequest pages through internal transfers of one direction.
type TransferHistoryRequest struct {
	Type      catalog.TransferType
	StartTime time.Time
	EndTime   time.Time
	Current   *int
	Size      *int
}

// SymbolType returns the spot symbol classification.
func (c *SpotClient) SymbolType(ctx context.Context) (string, error) {
	return c.call(ctx, catalog.OpSymbolType, nil)
}

// NewOrder places a spot order. Signed.
func (c *SpotClient) NewOrder(ctx context.Context, order SpotOrder) (string, error) {
	return c.call(ctx, catalog.OpNewOrder, order.params())
}

// TestOrder validates a spot order on the exchange without placing it. Signed.
func (c *SpotClient) TestOrder(ctx context.Context, order SpotOrder) (string, error) {
	return c.call(ctx, catalog.OpTestOrder, order.params())
}

// CancelOrder cancels one open order. Signed.
func (c *SpotClient) CancelOrder(ctx context.Context, req CancelOrderRequest) (string, error) {
	params := orderRefParams(req.OrderRef).OptString("newClientOrderId", req.NewClientOrderID)
	return c.call(ctx, catalog.OpCancel, params)
}

// CancelOpenOrders cancels every open order of symbol. Signed.
func (c *SpotClient) CancelOpenOrders(ctx context.Context, symbol string) (string, error) {
	return c.call(ctx, catalog.OpCancelOpenOrders, rest.NewParams().Add("symbol", symbol))
}

// NewOCO places an OCO order pair. Signed.
func (c *SpotClient) NewOCO(ctx context.Context, order OCOOrder) (string, error) {
	params := rest.NewParams().
		Add("symbol", order.Symbol).
		OptString("listClientOrderId", order.ListClientOrderID).
		AddEnum("side", order.Side).
		AddDecimal("quantity", order.Quantity).
		OptString("limitClientOrderId", order.LimitClientOrderID).
		AddDecimal("price", order.Price).
		OptDecimal("limitIcebergQty", order.LimitIcebergQty).
		OptString("stopClientOrderId", order.StopClientOrderID).
		AddDecimal("stopPrice", order.StopPrice).
		OptDecimal("stopLimitPrice", order.StopLimitPrice).
		OptDecimal("stopIcebergQty", order.StopIcebergQty).
		OptEnum("stopLimitTimeInForce", order.StopLimitTimeInForce).
		OptEnum("newOrderRespType", order.NewOrderRespType)
	return c.call(ctx, catalog.OpNewOCO, params)
}

// MyTrades returns the account's trades of a symbol. Signed.
func (c *SpotClient) MyTrades(ctx context.Context, q TradesQuery) (string, error) {
	params := rest.NewParams().
		Add("symbol", q.Symbol).
		OptInt64("orderId", q.OrderID).
		OptTime("startTime", q.StartTime).
		OptTime("endTime", q.EndTime).
		OptInt64("fromId", q.FromID).
		OptInt("limit", q.Limit)
	return c.call(ctx, catalog.OpMyTrades, params)
}

// Withdraw submits a withdrawal. Signed.
func (c *SpotClient) Withdraw(ctx context.Context, req WithdrawRequest) (string, error) {
	params := rest.NewParams().
		Add("coin", req.Coin).
		OptString("withdrawOrderId", req.WithdrawOrderID).
		OptString("network", req.Network).
		Add("address", req.Address).
		OptString("addressTag", req.AddressTag).
		AddDecimal("amount", req.Amount).
		OptString("name", req.Name)
	return c.call(ctx, catalog.OpWithdraw, params)
}

// DepositAddress returns the deposit address of coin, optionally on a given network. Signed.
func (c *SpotClient) DepositAddress(ctx context.Context, coin, network string) (string, error) {
	return c.call(ctx, catalog.OpDepositAddress, rest.NewParams().Add("coin", coin).OptString("network", network))
}

// DepositHistory returns past deposits. Signed.
func (c *SpotClient) DepositHistory(ctx context.Context, req DepositHistoryRequest) (string, error) {
	params := rest.NewParams().
		OptString("coin", req.Coin).
		OptInt("status", req.Status).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("offset", req.Offset).
		OptInt("limit", req.Limit)
	return c.call(ctx, catalog.OpDepositHistory, params)
}

// WithdrawHistory returns past withdrawals. Signed.
func (c *SpotClient) WithdrawHistory(ctx context.Context, req WithdrawHistoryRequest) (string, error) {
	params := rest.NewParams().
		OptString("coin", req.Coin).
		OptString("withdrawOrderId", req.WithdrawOrderID).
		OptInt("status", req.Status).
		OptInt("offset", req.Offset).
		OptInt("limit", req.Limit).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime)
	return c.call(ctx, catalog.OpWithdrawHistory, params)
}

// Transfer moves amount of asset between the account's wallets. Signed.
func (c *SpotClient) Transfer(ctx context.Context, direction catalog.TransferType, asset string, amount decimal.Decimal) (string, error) {
	params := rest.NewParams().
		AddEnum("type", direction).
		Add("asset", asset).
		AddDecimal("amount", amount)
	return c.call(ctx, catalog.OpAssetTransfer, params)
}

// TransferHistory returns internal transfers of one direction. Signed.
func (c *SpotClient) TransferHistory(ctx context.Context, req TransferHistoryRequest) (string, error) {
	params := rest.NewParams().
		AddEnum("type", req.Type).
		OptTime("startTime", req.StartTime).
		OptTime("endTime", req.EndTime).
		OptInt("current", req.Current).
		OptInt("size", req.Size)
	return c.call(ctx, catalog.OpTransferHistory, params)
}
