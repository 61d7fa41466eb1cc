package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"delta_bot/internal/models"

	"github.com/adshao/go-binance/v2"
)

// BinanceFetcher reads public spot klines; no credentials are needed.
type BinanceFetcher struct {
	spot *binance.Client
}

func NewBinanceFetcher() *BinanceFetcher {
	return &BinanceFetcher{spot: binance.NewClient("", "")}
}

func (f *BinanceFetcher) Klines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	klines, err := f.spot.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s %s: %w", symbol, interval, err)
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		c := models.Candle{OpenTime: time.UnixMilli(k.OpenTime)}
		fields := []struct {
			dst *float64
			raw string
		}{
			{&c.Open, k.Open},
			{&c.High, k.High},
			{&c.Low, k.Low},
			{&c.Close, k.Close},
			{&c.Volume, k.Volume},
		}
		for _, fl := range fields {
			v, err := strconv.ParseFloat(fl.raw, 64)
			if err != nil {
				return nil, fmt.Errorf("binance kline %d: parse %q: %w", k.OpenTime, fl.raw, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("binance kline %d: %q is not finite", k.OpenTime, fl.raw)
			}
			*fl.dst = v
		}
		candles = append(candles, c)
	}
	return candles, nil
}
