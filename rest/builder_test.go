package rest

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOrderEndpoint = Endpoint{
		Name:   "newOrder",
		Method: http.MethodPost,
		Path:   "/v3/order",
		Auth:   true,
		Params: []ParamSpec{
			{Name: "symbol", Kind: KindString, Required: true},
			{Name: "side", Kind: KindEnum, Required: true, Values: []string{"BUY", "SELL"}},
			{Name: "type", Kind: KindEnum, Required: true, Values: []string{"LIMIT", "MARKET"}},
			{Name: "timeInForce", Kind: KindEnum, Values: []string{"GTC", "IOC", "FOK"}},
			{Name: "quantity", Kind: KindDecimal},
			{Name: "price", Kind: KindDecimal},
		},
	}
	testTradesEndpoint = Endpoint{
		Name:   "myTrades",
		Method: http.MethodGet,
		Path:   "/v3/myTrades",
		Auth:   true,
		Params: []ParamSpec{
			{Name: "symbol", Kind: KindString, Required: true},
			{Name: "startTime", Kind: KindTimestamp},
			{Name: "limit", Kind: KindInteger, Min: 1, Max: 1000},
		},
	}
	testDepthEndpoint = Endpoint{
		Name:   "depth",
		Method: http.MethodGet,
		Path:   "/v1/depth",
		Params: []ParamSpec{
			{Name: "symbol", Kind: KindString, Required: true},
			{Name: "limit", Kind: KindInteger, Min: 1, Max: 1000},
		},
	}
	testAccountEndpoint = Endpoint{Name: "account", Method: http.MethodGet, Path: "/v1/account", Auth: true}
	testCancelEndpoint  = Endpoint{
		Name:   "cancelOrder",
		Method: http.MethodDelete,
		Path:   "/v1/order",
		Auth:   true,
		Params: []ParamSpec{{Name: "symbol", Kind: KindString, Required: true}, {Name: "orderId", Kind: KindInteger}},
	}
)

const vectorTimestamp = 1499827319559

func fixedClock() time.Time { return time.UnixMilli(vectorTimestamp) }

func newSignedBuilder(t *testing.T, opts ...BuilderOption) *Builder {
	t.Helper()
	id, err := NewIdentity("test-key", vectorSecret)
	require.NoError(t, err)
	b, err := NewBuilder("https://api.commex.com/api", append([]BuilderOption{WithIdentity(id), WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	return b
}

func TestBuildSignedPostMatchesExchangeVector(t *testing.T) {
	b := newSignedBuilder(t)
	params := NewParams().
		Add("symbol", "LTCBTC").
		Add("side", "BUY").
		Add("type", "LIMIT").
		Add("timeInForce", "GTC").
		Add("quantity", "1").
		Add("price", "0.1")

	req, err := b.Build(testOrderEndpoint, params)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.commex.com/api/v3/order", req.URL)
	assert.Equal(t, vectorCanonical+"&signature="+vectorSignature, req.Body)
	assert.Equal(t, "test-key", req.Header.Get(HeaderAPIKey))
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
}

func TestBuildSignedGetRoundTrip(t *testing.T) {
	b := newSignedBuilder(t)
	params := NewParams().Add("symbol", "BTCUSDT").Add("startTime", "1499827000000").AddInt("limit", 1000)

	req, err := b.Build(testTradesEndpoint, params)
	require.NoError(t, err)

	pairs := append(params.Pairs(),
		Pair{Name: ParamRecvWindow, Value: "5000"},
		Pair{Name: ParamTimestamp, Value: strconv.FormatInt(vectorTimestamp, 10)},
	)
	signed := Canonicalize(pairs)
	signature, err := Sign(vectorSecret, signed)
	require.NoError(t, err)
	expected := Canonicalize(append(pairs, Pair{Name: ParamSignature, Value: signature}))

	u, err := url.Parse(req.URL)
	require.NoError(t, err)
	assert.Equal(t, expected, u.RawQuery)
	assert.Equal(t, "/api/v3/myTrades", u.Path)
	assert.Empty(t, req.Body)
	assert.NotContains(t, req.URL, "test-key")
}

func TestBuildSignedWithoutParamsStillSignsTimestamp(t *testing.T) {
	b := newSignedBuilder(t, WithRecvWindow(0))

	req, err := b.Build(testAccountEndpoint, nil)
	require.NoError(t, err)

	signature, err := Sign(vectorSecret, "timestamp=1499827319559")
	require.NoError(t, err)
	assert.Equal(t, "https://api.commex.com/api/v1/account?timestamp=1499827319559&signature="+signature, req.URL)
}

func TestBuildDeleteUsesQuery(t *testing.T) {
	b := newSignedBuilder(t)
	req, err := b.Build(testCancelEndpoint, NewParams().Add("symbol", "BTCUSDT").AddInt64("orderId", 42))
	require.NoError(t, err)
	assert.Empty(t, req.Body)
	assert.Contains(t, req.URL, "?symbol=BTCUSDT&orderId=42&recvWindow=5000&timestamp=")
}

func TestBuildPublicRequest(t *testing.T) {
	b, err := NewBuilder("https://api.commex.com/fapi/")
	require.NoError(t, err)

	req, err := b.Build(testDepthEndpoint, NewParams().Add("symbol", "BTCUSDT").AddInt("limit", 100))
	require.NoError(t, err)
	assert.Equal(t, "https://api.commex.com/fapi/v1/depth?symbol=BTCUSDT&limit=100", req.URL)
	assert.Empty(t, req.Header.Get(HeaderAPIKey))
	assert.NotContains(t, req.URL, "signature")

	req, err = b.Build(Endpoint{Name: "ping", Method: http.MethodGet, Path: "/v1/ping"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.commex.com/fapi/v1/ping", req.URL)
}

func TestBuildRequiresIdentity(t *testing.T) {
	b, err := NewBuilder("https://api.commex.com/api")
	require.NoError(t, err)

	req, err := b.Build(testAccountEndpoint, nil)
	assert.Nil(t, req)
	require.Error(t, err)
	assert.True(t, IsAuthenticationRequired(err))
}

func TestBuildLimitRange(t *testing.T) {
	b, err := NewBuilder("https://api.commex.com/api")
	require.NoError(t, err)

	for _, limit := range []int{0, -1, 1001} {
		_, err := b.Build(testDepthEndpoint, NewParams().Add("symbol", "BTCUSDT").AddInt("limit", limit))
		require.Error(t, err, "limit %d", limit)
		assert.True(t, IsInvalidArgument(err), "limit %d", limit)
	}

	_, err = b.Build(testDepthEndpoint, NewParams().Add("symbol", "BTCUSDT").AddInt("limit", 1000))
	assert.NoError(t, err)
}

func TestBuildValidation(t *testing.T) {
	b := newSignedBuilder(t)
	cases := map[string]*Params{
		"missing required": NewParams().Add("side", "BUY").Add("type", "LIMIT"),
		"unknown name":     NewParams().Add("symbol", "X").Add("side", "BUY").Add("type", "LIMIT").Add("foo", "1"),
		"bad enum":         NewParams().Add("symbol", "X").Add("side", "buy").Add("type", "LIMIT"),
		"exponent decimal": NewParams().Add("symbol", "X").Add("side", "BUY").Add("type", "LIMIT").Add("price", "1e-3"),
		"not a decimal":    NewParams().Add("symbol", "X").Add("side", "BUY").Add("type", "LIMIT").Add("price", "abc"),
		"duplicate":        NewParams().Add("symbol", "X").Add("symbol", "Y").Add("side", "BUY").Add("type", "LIMIT"),
		"reserved":         NewParams().Add("symbol", "X").Add("side", "BUY").Add("type", "LIMIT").Add("timestamp", "1"),
		"empty string":     NewParams().Add("symbol", "").Add("side", "BUY").Add("type", "LIMIT"),
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := b.Build(testOrderEndpoint, params)
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err))
		})
	}
}

func TestBuildTimestampCapturedAtBuildTime(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	b := newSignedBuilder(t, WithClock(func() time.Time { return now }))

	first, err := b.Build(testAccountEndpoint, nil)
	require.NoError(t, err)
	now = now.Add(time.Second)
	second, err := b.Build(testAccountEndpoint, nil)
	require.NoError(t, err)

	assert.Contains(t, first.URL, "timestamp=1700000000000&")
	assert.Contains(t, second.URL, "timestamp=1700000001000&")
}

func TestNewBuilderConfiguration(t *testing.T) {
	_, err := NewBuilder("  ")
	assert.True(t, IsConfigurationError(err))

	_, err = NewBuilder("https://api.commex.com/api", WithRecvWindow(61*time.Second))
	assert.True(t, IsConfigurationError(err))
}
