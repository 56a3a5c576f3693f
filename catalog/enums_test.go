package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumWireValues(t *testing.T) {
	assert.Equal(t, "BUY", OrderSideBuy.String())
	assert.Equal(t, "STOP_LOSS_LIMIT", OrderTypeStopLossLimit.String())
	assert.Equal(t, "GTX", TimeInForceGTX.String())
	assert.Equal(t, "FUNDING_FUTURE", TransferFundingToFuture.String())
	assert.Equal(t, "1M", Interval1Month.String())
	assert.Equal(t, "1m", Interval1Minute.String())
}

func TestParseIntervalIsCaseSensitive(t *testing.T) {
	month, err := ParseInterval("1M")
	require.NoError(t, err)
	assert.Equal(t, Interval1Month, month)

	minute, err := ParseInterval("1m")
	require.NoError(t, err)
	assert.Equal(t, Interval1Minute, minute)

	_, err = ParseInterval("2d")
	assert.Error(t, err)
}

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseOrderSide("buy")
	assert.Error(t, err)
	_, err = ParseOrderType("TRAILING_STOP")
	assert.Error(t, err)
	_, err = ParseTransferType("MAIN_MARGIN")
	assert.Error(t, err)

	side, err := ParseOrderSide("SELL")
	require.NoError(t, err)
	assert.Equal(t, OrderSideSell, side)
}

func TestValid(t *testing.T) {
	assert.True(t, PositionSideLong.Valid())
	assert.False(t, PositionSide("FLAT").Valid())
	assert.True(t, MarginTypeIsolated.Valid())
	assert.False(t, TimeInForce("GTD").Valid())
}

func TestIntervalsReturnsCopy(t *testing.T) {
	list := Intervals()
	require.Len(t, list, 15)
	list[0] = "bogus"
	assert.Equal(t, Interval1Minute, Intervals()[0])
}
