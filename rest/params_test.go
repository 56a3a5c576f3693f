package rest

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSide string

func (s testSide) String() string { return string(s) }

func TestCanonicalizePreservesOrder(t *testing.T) {
	p := NewParams().
		Add("symbol", "LTCBTC").
		AddEnum("side", testSide("BUY")).
		Add("type", "LIMIT").
		Add("timeInForce", "GTC").
		AddDecimal("quantity", decimal.RequireFromString("1")).
		AddDecimal("price", decimal.RequireFromString("0.1"))
	require.NoError(t, p.Err())
	assert.Equal(t, "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1", p.Encode())

	reversed := NewParams().Add("price", "0.1").Add("symbol", "LTCBTC")
	forward := NewParams().Add("symbol", "LTCBTC").Add("price", "0.1")
	assert.NotEqual(t, forward.Encode(), reversed.Encode())
	assert.Equal(t, forward.Encode(), forward.Encode())
}

func TestCanonicalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Canonicalize(nil))
	assert.Equal(t, "", NewParams().Encode())
	var nilParams *Params
	assert.Equal(t, "", nilParams.Encode())
	assert.Equal(t, 0, nilParams.Len())
}

func TestCanonicalizeEscapesOnce(t *testing.T) {
	p := NewParams().Add("newClientOrderId", "my order+1").Add("symbol", "BTCUSDT")
	assert.Equal(t, "newClientOrderId=my+order%2B1&symbol=BTCUSDT", p.Encode())
}

func TestParamsTypedValues(t *testing.T) {
	ts := time.UnixMilli(1499827319559)
	p := NewParams().
		AddInt("limit", 500).
		AddInt64("orderId", 28).
		AddFloat("price", 0.00000001).
		AddDecimal("quantity", decimal.New(15, 8)).
		AddTime("startTime", ts).
		AddBool("reduceOnly", true)

	assert.Equal(t, "limit=500&orderId=28&price=0.00000001&quantity=1500000000&startTime=1499827319559&reduceOnly=true", p.Encode())
}

func TestParamsOptionalHelpers(t *testing.T) {
	limit := 10
	price := decimal.RequireFromString("2.5")
	p := NewParams().
		OptString("symbol", "").
		OptInt("limit", nil).
		OptInt("limit", &limit).
		OptDecimal("price", &price).
		OptTime("startTime", time.Time{}).
		OptEnum("side", testSide("")).
		OptBool("reduceOnly", nil)

	require.NoError(t, p.Err())
	assert.Equal(t, "limit=10&price=2.5", p.Encode())
}

func TestParamsRejectsDuplicates(t *testing.T) {
	p := NewParams().Add("symbol", "BTCUSDT").Add("symbol", "ETHUSDT")
	require.Error(t, p.Err())
	assert.True(t, IsInvalidArgument(p.Err()))

	value, ok := p.Get("symbol")
	assert.True(t, ok)
	assert.Equal(t, "BTCUSDT", value)
	assert.Equal(t, 1, p.Len())
}

func TestParamsPairsIsCopy(t *testing.T) {
	p := NewParams().Add("symbol", "BTCUSDT")
	pairs := p.Pairs()
	pairs[0].Value = "changed"
	assert.Equal(t, "symbol=BTCUSDT", p.Encode())
}

func TestParamsAddFloatRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := NewParams().Add("symbol", "BTCUSDT")
		require.NotPanics(t, func() { p.AddFloat("price", v) })
		require.Error(t, p.Err(), "%v", v)
		assert.True(t, IsInvalidArgument(p.Err()))
		assert.Equal(t, 1, p.Len())
	}

	p := NewParams().AddFloat("price", 0.1)
	require.NoError(t, p.Err())
	assert.Equal(t, "price=0.1", p.Encode())
}
