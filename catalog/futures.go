package catalog

import (
	"net/http"

	"github.com/evdnx/gocommex/rest"
)

// FuturesBasePath prefixes every futures endpoint.
const FuturesBasePath = "/fapi"

// Futures-only operation names.
const (
	OpHistoricalTrades    = "historicalTrades"
	OpIndexPriceKlines    = "indexPriceKlines"
	OpMarkPriceKlines     = "markPriceKlines"
	OpPremiumIndex        = "premiumIndex"
	OpFundingRate         = "fundingRate"
	OpOpenInterest        = "openInterest"
	OpCancelAllOpenOrders = "cancelAllOpenOrders"
	OpBalance             = "balance"
	OpPositionRisk        = "positionRisk"
	OpLeverage            = "leverage"
	OpMarginType          = "marginType"
	OpUserTrades          = "userTrades"
	OpIncome              = "income"
)

// Futures returns the futures market catalog.
func Futures() Market {
	return newMarket(MarketFutures, FuturesBasePath, sharedMarketData(), futuresPublic(), futuresTrading())
}

func futuresPublic() []rest.Endpoint {
	intervalValues := wireValues(intervals)
	return []rest.Endpoint{
		public(OpHistoricalTrades, "/v1/historicalTrades", symbol(true), limit(MaxLimit), integer("fromId", false)),
		public(OpIndexPriceKlines, "/v1/indexPriceKlines",
			str("pair", true), enum("interval", intervalValues, true), ts("startTime"), ts("endTime"), limit(MaxKlineLimitFutures)),
		public(OpMarkPriceKlines, "/v1/markPriceKlines",
			symbol(true), enum("interval", intervalValues, true), ts("startTime"), ts("endTime"), limit(MaxKlineLimitFutures)),
		public(OpPremiumIndex, "/v1/premiumIndex", symbol(false)),
		public(OpFundingRate, "/v1/fundingRate", symbol(false), ts("startTime"), ts("endTime"), limit(MaxLimit)),
		public(OpOpenInterest, "/v2/openInterest", symbol(true)),
	}
}

func futuresTrading() []rest.Endpoint {
	return []rest.Endpoint{
		signed(OpNewOrder, http.MethodPost, "/v1/order",
			symbol(true),
			enum("side", wireValues(orderSides), true),
			enum("positionSide", wireValues(positionSides), false),
			enum("type", wireValues(orderTypes), true),
			enum("timeInForce", wireValues(timesInForce), false),
			dec("quantity", false),
			boolean("reduceOnly"),
			dec("price", false),
			str("newClientOrderId", false),
			dec("stopPrice", false),
			enum("newOrderRespType", wireValues([]ResponseType{ResponseTypeAck, ResponseTypeResult}), false),
		),
		signed(OpQueryOrder, http.MethodGet, "/v1/order",
			symbol(true), integer("orderId", false), str("origClientOrderId", false)),
		signed(OpCancel, http.MethodDelete, "/v1/order",
			symbol(true), integer("orderId", false), str("origClientOrderId", false)),
		signed(OpCancelAllOpenOrders, http.MethodDelete, "/v1/allOpenOrders", symbol(true)),
		signed(OpOpenOrders, http.MethodGet, "/v1/openOrders", symbol(false)),
		signed(OpAllOrders, http.MethodGet, "/v1/allOrders",
			symbol(true), integer("orderId", false), ts("startTime"), ts("endTime"), limit(MaxLimit)),
		signed(OpBalance, http.MethodGet, "/v2/balance"),
		signed(OpAccount, http.MethodGet, "/v2/account"),
		signed(OpPositionRisk, http.MethodGet, "/v2/positionRisk", symbol(false)),
		signed(OpLeverage, http.MethodPost, "/v1/leverage", symbol(true), bounded("leverage", 1, MaxLeverage, true)),
		signed(OpMarginType, http.MethodPost, "/v1/marginType", symbol(true), enum("marginType", wireValues(marginTypes), true)),
		signed(OpUserTrades, http.MethodGet, "/v1/userTrades",
			symbol(true), ts("startTime"), ts("endTime"), integer("fromId", false), limit(MaxLimit)),
		signed(OpIncome, http.MethodGet, "/v1/income",
			symbol(false), str("incomeType", false), ts("startTime"), ts("endTime"), limit(MaxLimit)),
	}
}
