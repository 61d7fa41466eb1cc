package service

import (
	"context"

	"delta_bot/internal/models"
	"delta_bot/internal/modules/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CandleFetcher interface {
	Klines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// Source turns the latest candles into one directional signal per call.
type Source struct {
	fetcher CandleFetcher
	cfg     config.MarketConfig
	log     *zap.Logger
}

func NewSource(cfg *config.Config, fetcher CandleFetcher, log *zap.Logger) *Source {
	return &Source{
		fetcher: fetcher,
		cfg:     cfg.Market,
		log:     log.Named("signal"),
	}
}

func (s *Source) LatestSignal(ctx context.Context) (models.Signal, error) {
	candles, err := s.fetcher.Klines(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.Limit)
	if err != nil {
		return models.Signal{}, errors.Wrap(err, "fetch candles")
	}

	snap, err := ComputeSnapshot(candles, IndicatorParams{
		EMAPeriod:    s.cfg.EMAPeriod,
		VolumePeriod: s.cfg.VolumePeriod,
		ADXPeriod:    s.cfg.ADXPeriod,
	})
	if err != nil {
		return models.Signal{}, errors.Wrap(err, "indicators")
	}

	dir := Decide(snap, s.cfg.ADXThreshold)
	s.log.Info("strategy check",
		zap.String("symbol", s.cfg.Symbol),
		zap.Float64("close", snap.Close),
		zap.Float64("ema", snap.EMA),
		zap.Float64("volume", snap.Volume),
		zap.Float64("volume_sma", snap.VolumeSMA),
		zap.Float64("adx", snap.ADX),
		zap.String("direction", string(dir)),
	)

	last := candles[len(candles)-1]
	return models.Signal{
		Direction:      dir,
		ReferencePrice: snap.Close,
		Time:           last.OpenTime,
		Reason:         snap.String(),
	}, nil
}
