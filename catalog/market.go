// Package catalog holds the endpoint tables of the CommEX spot and futures REST APIs.
// The tables are data: one rest.Endpoint per operation, consumed by rest.Builder.
package catalog

import (
	"net/http"
	"sort"
	"time"

	"github.com/evdnx/gocommex/rest"
)

// DefaultBaseURL is the production REST host.
const DefaultBaseURL = "https://api.commex.com"

// MarketName identifies a market.
type MarketName string

const (
	MarketSpot    MarketName = "spot"
	MarketFutures MarketName = "futures"
)

// Operation names shared by both markets.
const (
	OpPing         = "ping"
	OpServerTime   = "serverTime"
	OpExchangeInfo = "exchangeInfo"
	OpDepth        = "depth"
	OpTrades       = "trades"
	OpAggTrades    = "aggTrades"
	OpKlines       = "klines"
	OpTicker24hr   = "ticker24hr"
	OpTickerPrice  = "tickerPrice"
	OpBookTicker   = "bookTicker"

	OpNewOrder   = "newOrder"
	OpQueryOrder = "queryOrder"
	OpCancel     = "cancelOrder"
	OpOpenOrders = "openOrders"
	OpAllOrders  = "allOrders"
	OpAccount    = "account"
)

const (
	// MaxLimit is the upper bound of most "limit" parameters.
	MaxLimit = 1000
	// MaxKlineLimitFutures bounds "limit" on the futures mark and index price klines.
	MaxKlineLimitFutures = 1500
	// MaxLeverage is the highest leverage the futures API accepts.
	MaxLeverage = 125

	staticDataTTL = 5 * time.Minute
)

// Market is one market's base path and endpoint table.
type Market struct {
	Name      MarketName
	BasePath  string
	endpoints map[string]rest.Endpoint
}

func newMarket(name MarketName, basePath string, tables ...[]rest.Endpoint) Market {
	m := Market{Name: name, BasePath: basePath, endpoints: make(map[string]rest.Endpoint)}
	for _, table := range tables {
		for _, ep := range table {
			m.endpoints[ep.Name] = ep
		}
	}
	return m
}

// Endpoint returns the descriptor of the named operation.
func (m Market) Endpoint(name string) (rest.Endpoint, bool) {
	ep, ok := m.endpoints[name]
	return ep, ok
}

// Operations returns the sorted names of every operation in the market.
func (m Market) Operations() []string {
	names := make([]string, 0, len(m.endpoints))
	for name := range m.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarketByName returns the spot or futures market.
func MarketByName(name MarketName) (Market, bool) {
	switch name {
	case MarketSpot:
		return Spot(), true
	case MarketFutures:
		return Futures(), true
	default:
		return Market{}, false
	}
}

// ParamSpec shorthands used by the tables.

func str(name string, required bool) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindString, Required: required}
}

func integer(name string, required bool) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindInteger, Required: required}
}

func bounded(name string, min, max int64, required bool) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindInteger, Required: required, Min: min, Max: max}
}

func limit(max int64) rest.ParamSpec { return bounded("limit", 1, max, false) }

func dec(name string, required bool) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindDecimal, Required: required}
}

func ts(name string) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindTimestamp}
}

func enum(name string, values []string, required bool) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindEnum, Required: required, Values: values}
}

func boolean(name string) rest.ParamSpec {
	return rest.ParamSpec{Name: name, Kind: rest.KindBool}
}

func symbol(required bool) rest.ParamSpec { return str("symbol", required) }

func public(name, path string, params ...rest.ParamSpec) rest.Endpoint {
	return rest.Endpoint{Name: name, Method: http.MethodGet, Path: path, Params: params}
}

func signed(name, method, path string, params ...rest.ParamSpec) rest.Endpoint {
	return rest.Endpoint{Name: name, Method: method, Path: path, Auth: true, Params: params}
}

// sharedMarketData lists the public endpoints both markets expose, with the same limits.
func sharedMarketData() []rest.Endpoint {
	exchangeInfo := public(OpExchangeInfo, "/v1/exchangeInfo")
	exchangeInfo.CacheTTL = staticDataTTL

	return []rest.Endpoint{
		public(OpPing, "/v1/ping"),
		public(OpServerTime, "/v1/time"),
		exchangeInfo,
		public(OpDepth, "/v1/depth", symbol(true), limit(MaxLimit)),
		public(OpTrades, "/v1/trades", symbol(true), limit(MaxLimit)),
		public(OpAggTrades, "/v1/aggTrades", symbol(true), integer("fromId", false), ts("startTime"), ts("endTime"), limit(MaxLimit)),
		public(OpKlines, "/v1/klines", symbol(true), enum("interval", wireValues(intervals), true), ts("startTime"), ts("endTime"), limit(MaxLimit)),
		public(OpTicker24hr, "/v1/ticker/24hr", symbol(false)),
		public(OpTickerPrice, "/v1/ticker/price", symbol(false)),
		public(OpBookTicker, "/v1/ticker/bookTicker", symbol(false)),
	}
}
