package runner

import (
	"math"
	"testing"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultRisk = models.RiskParameters{RiskPct: 0.10, StopLossPct: 0.02, TakeProfitMultiplier: 7, Leverage: 50}

func TestCalcSizedOrder_Long(t *testing.T) {
	t.Parallel()

	o, err := CalcSizedOrder(1000, 2000, models.SideBuy, defaultRisk)
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, models.SideBuy, o.Side)
	assert.InDelta(t, 2000, o.EntryPrice, 1e-9)
	assert.InDelta(t, 0.1, o.Size, 1e-9)
	assert.InDelta(t, 1980, o.StopLossPrice, 1e-9)
	assert.InDelta(t, 2140, o.TakeProfitPrice, 1e-9)
	assert.InDelta(t, 140, o.TakeProfitDistance, 1e-9)
}

func TestCalcSizedOrder_Short(t *testing.T) {
	t.Parallel()

	o, err := CalcSizedOrder(1000, 2000, models.SideSell, defaultRisk)
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.InDelta(t, 2020, o.StopLossPrice, 1e-9)
	assert.InDelta(t, 1860, o.TakeProfitPrice, 1e-9)
	assert.Greater(t, o.StopLossPrice, o.EntryPrice)
	assert.Less(t, o.TakeProfitPrice, o.EntryPrice)
}

func TestCalcSizedOrder_Invariants(t *testing.T) {
	t.Parallel()

	for _, capital := range []float64{37.5, 250, 1234.56, 98765} {
		for _, price := range []float64{0.5, 1812.37, 64000} {
			for _, side := range []models.Side{models.SideBuy, models.SideSell} {
				o, err := CalcSizedOrder(capital, price, side, defaultRisk)
				require.NoError(t, err)
				require.NotNil(t, o)

				assert.Greater(t, o.Size, 0.0)
				assert.InDelta(t, o.Size*1000, math.Round(o.Size*1000), 1e-6, "size has 3 decimals")
				assert.InDelta(t, o.StopLossPrice*100, math.Round(o.StopLossPrice*100), 1e-4, "stop has 2 decimals")
				assert.InDelta(t, o.TakeProfitDistance, capital*defaultRisk.StopLossPct*defaultRisk.TakeProfitMultiplier, 1e-9)
				if side == models.SideBuy {
					assert.LessOrEqual(t, o.StopLossPrice, price)
					assert.GreaterOrEqual(t, o.TakeProfitPrice, price)
				}
			}
		}
	}
}

func TestCalcSizedOrder_ZeroSizeSkips(t *testing.T) {
	t.Parallel()

	tiny := defaultRisk
	tiny.RiskPct = 0.0001

	o, err := CalcSizedOrder(1000, 2000, models.SideBuy, tiny)
	require.NoError(t, err)
	assert.Nil(t, o)

	o, err = CalcSizedOrder(0, 2000, models.SideBuy, defaultRisk)
	require.NoError(t, err)
	assert.Nil(t, o)

	o, err = CalcSizedOrder(1000, 0, models.SideSell, defaultRisk)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestCalcSizedOrder_UnsupportedSide(t *testing.T) {
	t.Parallel()

	o, err := CalcSizedOrder(1000, 2000, models.Side("hold"), defaultRisk)
	assert.Nil(t, o)
	assert.True(t, errors.Is(err, models.ErrUnsupportedSide))
}

func TestCalcSizedOrder_NonFiniteCapitalSkips(t *testing.T) {
	t.Parallel()

	o, err := CalcSizedOrder(math.Inf(1), 2000, models.SideBuy, defaultRisk)
	require.NoError(t, err)
	assert.Nil(t, o)
}
