package runner

import (
	"context"
	"time"

	"delta_bot/internal/models"
	"delta_bot/internal/modules/config"
	hsvc "delta_bot/internal/modules/health/service"
	"delta_bot/internal/notify"

	"go.uber.org/zap"
)

// TrailController supervises one position from entry until the exchange
// reports it closed, moving the protective stop to break-even and then trailing it.
type TrailController struct {
	ex            Exchange
	clock         Clock
	n             notify.Notifier
	metrics       *hsvc.Metrics
	log           *zap.Logger
	productID     int
	pollInterval  time.Duration
	onlyImproving bool
}

func NewTrailController(
	cfg *config.Config,
	ex Exchange,
	clock Clock,
	n notify.Notifier,
	metrics *hsvc.Metrics,
	log *zap.Logger,
) *TrailController {
	return &TrailController{
		ex:            ex,
		clock:         clock,
		n:             n,
		metrics:       metrics,
		log:           log.Named("trail"),
		productID:     cfg.Delta.ProductID,
		pollInterval:  cfg.Schedule.PollInterval,
		onlyImproving: cfg.Trail.OnlyImproving,
	}
}

// Supervise blocks until a poll observes a zero position size. Poll and stop
// failures never end it; only ctx cancellation does, returning ctx.Err().
func (c *TrailController) Supervise(ctx context.Context, order models.SizedOrder) (*models.TrailState, error) {
	st := models.NewTrailState(order.Side, order.EntryPrice, order.TakeProfitDistance)
	st.OnlyImproving = c.onlyImproving

	c.log.Info("supervising position",
		zap.String("side", string(st.Side)),
		zap.Float64("entry", st.Entry),
		zap.Float64("halfway", st.HalfwayPrice),
		zap.Float64("trail_distance", st.TrailDistance),
	)

	for {
		if c.pollOnce(ctx, st) {
			return st, nil
		}
		if err := c.clock.Sleep(ctx, c.pollInterval); err != nil {
			c.log.Warn("supervision interrupted", zap.String("phase", string(st.Phase)), zap.Error(err))
			return st, err
		}
	}
}

// pollOnce runs one poll and reports whether supervision is over.
// It issues at most one order-mutating call.
func (c *TrailController) pollOnce(ctx context.Context, st *models.TrailState) bool {
	pos, err := c.ex.Position(ctx, c.productID)
	if err != nil {
		c.log.Warn("position poll failed", zap.Error(err))
		return false
	}

	dec := st.Evaluate(pos)
	if dec.Close {
		c.log.Info("position closed", zap.Float64("last_stop", st.LastStop))
		c.n.Sendf(ctx, "🚪 Position closed (%s, entry %.2f, last SL %.2f)", st.Side.Upper(), st.Entry, st.LastStop)
		return true
	}
	if !dec.MoveSL {
		return false
	}

	stopSide := st.Side.Opposite()
	orderID, err := c.ex.PlaceStopOrder(ctx, c.productID, dec.Size, stopSide, dec.NewSL, dec.NewSL)
	if err != nil {
		c.log.Error("stop order failed",
			zap.String("reason", dec.Reason),
			zap.Float64("stop", dec.NewSL),
			zap.Error(err),
		)
		return false
	}
	st.Confirm(dec)
	c.metrics.StopUpdates.WithLabelValues(dec.Reason).Inc()

	c.log.Info("stop moved",
		zap.String("reason", dec.Reason),
		zap.Float64("stop", dec.NewSL),
		zap.Float64("mark", pos.MarkPrice),
		zap.Float64("size", dec.Size),
		zap.String("order_id", orderID),
	)
	if dec.Reason == models.TrailReasonBreakeven {
		c.n.Sendf(ctx, "🔄 SL moved to BE at %.2f", dec.NewSL)
	} else {
		c.n.Sendf(ctx, "🛡 Trailing SL -> %.2f (mark %.2f)", dec.NewSL, pos.MarkPrice)
	}
	return false
}
