package catalog

import (
	"net/http"

	"github.com/evdnx/gocommex/rest"
)

// SpotBasePath prefixes every spot endpoint.
const SpotBasePath = "/api"

// Spot-only operation names.
const (
	OpSymbolType       = "symbolType"
	OpTestOrder        = "testOrder"
	OpCancelOpenOrders = "cancelOpenOrders"
	OpNewOCO           = "newOCO"
	OpMyTrades         = "myTrades"
	OpWithdraw         = "withdraw"
	OpDepositAddress   = "depositAddress"
	OpDepositHistory   = "depositHistory"
	OpWithdrawHistory  = "withdrawHistory"
	OpAssetTransfer    = "assetTransfer"
	OpTransferHistory  = "transferHistory"
)

// Spot returns the spot market catalog.
func Spot() Market {
	return newMarket(MarketSpot, SpotBasePath, sharedMarketData(), spotPublic(), spotTrading(), spotWallet())
}

func spotPublic() []rest.Endpoint {
	symbolType := public(OpSymbolType, "/v1/symbolType")
	symbolType.CacheTTL = staticDataTTL
	return []rest.Endpoint{symbolType}
}

func spotOrderParams() []rest.ParamSpec {
	return []rest.ParamSpec{
		symbol(true),
		enum("side", wireValues(orderSides), true),
		enum("type", wireValues(orderTypes), true),
		enum("timeInForce", wireValues(timesInForce), false),
		dec("quantity", false),
		dec("quoteOrderQty", false),
		dec("price", false),
		str("newClientOrderId", false),
		dec("stopPrice", false),
		dec("icebergQty", false),
		enum("newOrderRespType", wireValues(responseTypes), false),
	}
}

func spotTrading() []rest.Endpoint {
	return []rest.Endpoint{
		signed(OpNewOrder, http.MethodPost, "/v1/order", spotOrderParams()...),
		signed(OpTestOrder, http.MethodPost, "/v1/order/test", spotOrderParams()...),
		signed(OpQueryOrder, http.MethodGet, "/v1/order",
			symbol(true), integer("orderId", false), str("origClientOrderId", false)),
		signed(OpCancel, http.MethodDelete, "/v1/order",
			symbol(true), integer("orderId", false), str("origClientOrderId", false), str("newClientOrderId", false)),
		signed(OpCancelOpenOrders, http.MethodDelete, "/v1/openOrders", symbol(true)),
		signed(OpOpenOrders, http.MethodGet, "/v1/openOrders", symbol(false)),
		signed(OpAllOrders, http.MethodGet, "/v1/allOrders",
			symbol(true), integer("orderId", false), ts("startTime"), ts("endTime"), limit(MaxLimit)),
		signed(OpNewOCO, http.MethodPost, "/v1/order/oco",
			symbol(true),
			str("listClientOrderId", false),
			enum("side", wireValues(orderSides), true),
			dec("quantity", true),
			str("limitClientOrderId", false),
			dec("price", true),
			dec("limitIcebergQty", false),
			str("stopClientOrderId", false),
			dec("stopPrice", true),
			dec("stopLimitPrice", false),
			dec("stopIcebergQty", false),
			enum("stopLimitTimeInForce", wireValues(timesInForce), false),
			enum("newOrderRespType", wireValues(responseTypes), false),
		),
		signed(OpAccount, http.MethodGet, "/v1/account"),
		signed(OpMyTrades, http.MethodGet, "/v1/myTrades",
			symbol(true), integer("orderId", false), ts("startTime"), ts("endTime"), integer("fromId", false), limit(MaxLimit)),
	}
}

func spotWallet() []rest.Endpoint {
	transferTypeValues := wireValues(transferTypes)
	return []rest.Endpoint{
		signed(OpWithdraw, http.MethodPost, "/v1/capital/withdraw/apply",
			str("coin", true), str("withdrawOrderId", false), str("network", false), str("address", true),
			str("addressTag", false), dec("amount", true), str("name", false)),
		signed(OpDepositAddress, http.MethodGet, "/v1/capital/deposit/address",
			str("coin", true), str("network", false)),
		signed(OpDepositHistory, http.MethodGet, "/v1/capital/deposit/hisrec",
			str("coin", false), integer("status", false), ts("startTime"), ts("endTime"), integer("offset", false), limit(MaxLimit)),
		signed(OpWithdrawHistory, http.MethodGet, "/v1/capital/withdraw/history",
			str("coin", false), str("withdrawOrderId", false), integer("status", false), integer("offset", false),
			limit(MaxLimit), ts("startTime"), ts("endTime")),
		signed(OpAssetTransfer, http.MethodPost, "/v1/asset/transfer",
			enum("type", transferTypeValues, true), str("asset", true), dec("amount", true)),
		signed(OpTransferHistory, http.MethodGet, "/v1/asset/transfer",
			enum("type", transferTypeValues, true), ts("startTime"), ts("endTime"), integer("current", false), bounded("size", 1, 100, false)),
	}
}
