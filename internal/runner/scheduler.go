package runner

import (
	"context"
	"fmt"
	"time"

	"delta_bot/internal/helper"
	"delta_bot/internal/modules/config"
	hsvc "delta_bot/internal/modules/health/service"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Scheduler fires one cycle per candle boundary and never stops on a cycle
// fault; it backs off and carries on until ctx is cancelled.
type Scheduler struct {
	cycles       CycleRunner
	clock        Clock
	metrics      *hsvc.Metrics
	log          *zap.Logger
	period       time.Duration
	errorBackoff time.Duration
	balanceRetry time.Duration
}

func NewScheduler(cfg *config.Config, cycles CycleRunner, clock Clock, metrics *hsvc.Metrics, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cycles:       cycles,
		clock:        clock,
		metrics:      metrics,
		log:          log.Named("scheduler"),
		period:       cfg.Schedule.CandlePeriod,
		errorBackoff: cfg.Schedule.ErrorBackoff,
		balanceRetry: cfg.Schedule.BalanceRetry,
	}
}

func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started", zap.Duration("period", s.period))
	for {
		wait := helper.UntilNextBoundary(s.clock.Now(), s.period)
		s.log.Debug("waiting for candle close", zap.Duration("wait", wait))
		if err := s.clock.Sleep(ctx, wait); err != nil {
			return s.stopped(err)
		}

		outcome, err := s.runOnce(ctx)
		s.metrics.Cycles.WithLabelValues(string(outcome)).Inc()
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return s.stopped(ctx.Err())
		}

		s.metrics.CycleErrors.Inc()
		backoff := s.errorBackoff
		if errors.Is(err, ErrBalanceUnavailable) {
			backoff = s.balanceRetry
		}
		s.log.Error("cycle failed", zap.Duration("backoff", backoff), zap.Error(err))
		if err := s.clock.Sleep(ctx, backoff); err != nil {
			return s.stopped(err)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) (outcome CycleOutcome, err error) {
	start := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeFailed
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()
	outcome, err = s.cycles.RunCycle(ctx)
	s.log.Info("cycle finished", zap.String("outcome", string(outcome)), zap.Duration("took", s.clock.Now().Sub(start)))
	return outcome, err
}

func (s *Scheduler) stopped(err error) error {
	s.log.Info("scheduler stopped", zap.Error(err))
	return err
}
