package service

import (
	"context"
	"testing"
	"time"

	"delta_bot/internal/models"
	"delta_bot/internal/modules/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var defaultParams = IndicatorParams{EMAPeriod: 21, VolumePeriod: 30, ADXPeriod: 14}

// trend builds n candles moving by step per bar with a volume spike on the last one.
func trend(n int, start, step, lastVolume float64) []models.Candle {
	out := make([]models.Candle, n)
	t0 := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	for i := range out {
		c := start + step*float64(i)
		out[i] = models.Candle{
			OpenTime: t0.Add(time.Duration(i) * 15 * time.Minute),
			Open:     c - step,
			High:     c + 1,
			Low:      c - 1,
			Close:    c,
			Volume:   100,
		}
	}
	out[n-1].Volume = lastVolume
	return out
}

func TestDecide_Uptrend(t *testing.T) {
	t.Parallel()

	snap, err := ComputeSnapshot(trend(100, 100, 1, 500), defaultParams)
	require.NoError(t, err)
	assert.Greater(t, snap.Close, snap.EMA)
	assert.Greater(t, snap.ADX, 20.0)
	assert.Equal(t, models.DirectionBuy, Decide(snap, 20))
}

func TestDecide_Downtrend(t *testing.T) {
	t.Parallel()

	snap, err := ComputeSnapshot(trend(100, 300, -1, 500), defaultParams)
	require.NoError(t, err)
	assert.Less(t, snap.Close, snap.EMA)
	assert.Equal(t, models.DirectionSell, Decide(snap, 20))
}

func TestDecide_WeakVolume(t *testing.T) {
	t.Parallel()

	snap, err := ComputeSnapshot(trend(100, 100, 1, 50), defaultParams)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionNone, Decide(snap, 20))
}

func TestDecide_WeakTrendStrength(t *testing.T) {
	t.Parallel()

	snap := Snapshot{Close: 110, EMA: 100, Volume: 500, VolumeSMA: 100, ADX: 15}
	assert.Equal(t, models.DirectionNone, Decide(snap, 20))
}

func TestComputeSnapshot_NotEnoughCandles(t *testing.T) {
	t.Parallel()

	_, err := ComputeSnapshot(trend(20, 100, 1, 500), defaultParams)
	assert.Error(t, err)
}

type fakeFetcher struct {
	candles []models.Candle
	err     error
}

func (f fakeFetcher) Klines(context.Context, string, string, int) ([]models.Candle, error) {
	return f.candles, f.err
}

func TestSource_LatestSignal(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	src := NewSource(&cfg, fakeFetcher{candles: trend(100, 100, 1, 500)}, zap.NewNop())

	sig, err := src.LatestSignal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DirectionBuy, sig.Direction)
	assert.InDelta(t, 199, sig.ReferencePrice, 1e-9)
}

func TestSource_FetchError(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	src := NewSource(&cfg, fakeFetcher{err: errors.New("binance down")}, zap.NewNop())

	_, err := src.LatestSignal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binance down")
}
