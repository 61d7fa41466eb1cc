package service

import (
	"fmt"
	"math"

	"delta_bot/internal/models"

	"github.com/markcheno/go-talib"
)

type IndicatorParams struct {
	EMAPeriod    int
	VolumePeriod int
	ADXPeriod    int
}

// Snapshot holds indicator values on the latest candle.
type Snapshot struct {
	Close     float64
	EMA       float64
	Volume    float64
	VolumeSMA float64
	ADX       float64
}

func (s Snapshot) String() string {
	return fmt.Sprintf("close=%.2f ema=%.2f volume=%.2f volSMA=%.2f adx=%.2f",
		s.Close, s.EMA, s.Volume, s.VolumeSMA, s.ADX)
}

func ComputeSnapshot(candles []models.Candle, p IndicatorParams) (Snapshot, error) {
	need := p.EMAPeriod
	if p.VolumePeriod > need {
		need = p.VolumePeriod
	}
	if 2*p.ADXPeriod > need {
		need = 2 * p.ADXPeriod
	}
	if len(candles) <= need {
		return Snapshot{}, fmt.Errorf("not enough candles: have %d, need > %d", len(candles), need)
	}

	n := len(candles)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
		volumes[i] = c.Volume
	}

	ema := talib.Ema(closes, p.EMAPeriod)
	volSMA := talib.Sma(volumes, p.VolumePeriod)
	adx := talib.Adx(highs, lows, closes, p.ADXPeriod)

	return Snapshot{
		Close:     closes[n-1],
		EMA:       ema[n-1],
		Volume:    volumes[n-1],
		VolumeSMA: volSMA[n-1],
		ADX:       adx[n-1],
	}, nil
}

// Decide: trend by close vs EMA, confirmed by above-average volume and ADX strength.
func Decide(s Snapshot, adxThreshold float64) models.Direction {
	for _, v := range []float64{s.Close, s.EMA, s.Volume, s.VolumeSMA, s.ADX} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.DirectionNone
		}
	}
	if s.Volume <= s.VolumeSMA || s.ADX <= adxThreshold {
		return models.DirectionNone
	}
	switch {
	case s.Close > s.EMA:
		return models.DirectionBuy
	case s.Close < s.EMA:
		return models.DirectionSell
	default:
		return models.DirectionNone
	}
}
