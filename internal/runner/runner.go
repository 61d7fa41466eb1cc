package runner

import (
	"context"

	"delta_bot/internal/models"
	"delta_bot/internal/modules/config"
	hsvc "delta_bot/internal/modules/health/service"
	jsvc "delta_bot/internal/modules/journal/service"
	"delta_bot/internal/notify"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CycleOutcome string

const (
	OutcomeInPosition CycleOutcome = "in_position"
	OutcomeNoSignal   CycleOutcome = "no_signal"
	OutcomeRejected   CycleOutcome = "rejected"
	OutcomePlaced     CycleOutcome = "placed"
	OutcomeFailed     CycleOutcome = "failed"
)

var (
	ErrBalanceUnavailable  = errors.New("balance unavailable")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Manager runs one decision cycle: sweep stale orders, skip when already in a
// position, otherwise size and place a post-only entry and supervise it.
type Manager struct {
	ex      Exchange
	signals SignalSource
	journal jsvc.Journal
	trail   *TrailController
	n       notify.Notifier
	metrics *hsvc.Metrics
	clock   Clock
	log     *zap.Logger

	productID int
	assetID   int
	risk      models.RiskParameters
}

func NewManager(
	cfg *config.Config,
	ex Exchange,
	signals SignalSource,
	journal jsvc.Journal,
	trail *TrailController,
	n notify.Notifier,
	metrics *hsvc.Metrics,
	clock Clock,
	log *zap.Logger,
) *Manager {
	return &Manager{
		ex:        ex,
		signals:   signals,
		journal:   journal,
		trail:     trail,
		n:         n,
		metrics:   metrics,
		clock:     clock,
		log:       log.Named("manager"),
		productID: cfg.Delta.ProductID,
		assetID:   cfg.Delta.AssetID,
		risk:      cfg.Risk,
	}
}

func (m *Manager) RunCycle(ctx context.Context) (CycleOutcome, error) {
	capital, err := m.ex.Balance(ctx, m.assetID)
	if err != nil {
		return OutcomeFailed, errors.Wrap(ErrBalanceUnavailable, err.Error())
	}
	if capital <= 0 {
		return OutcomeFailed, errors.Wrapf(ErrBalanceUnavailable, "available balance %v", capital)
	}
	m.metrics.Balance.Set(capital)

	m.cancelStale(ctx)

	pos, err := m.ex.Position(ctx, m.productID)
	if err != nil {
		return OutcomeFailed, errors.Wrap(ErrPositionUnavailable, err.Error())
	}
	if pos.IsOpen() {
		m.log.Info("position already open, skipping entry",
			zap.String("side", string(pos.Side)),
			zap.Float64("size", pos.Size),
			zap.Float64("entry", pos.EntryPrice),
		)
		return OutcomeInPosition, nil
	}

	sig, err := m.signals.LatestSignal(ctx)
	if err != nil {
		return OutcomeFailed, errors.Wrap(err, "latest signal")
	}
	side, ok := sig.Direction.Side()
	if !ok {
		m.log.Info("no trade signal", zap.String("reason", sig.Reason))
		return OutcomeNoSignal, nil
	}

	order, err := CalcSizedOrder(capital, sig.ReferencePrice, side, m.risk)
	if err != nil {
		return OutcomeFailed, err
	}
	if order == nil {
		m.log.Info("order size rounds to zero, skipping",
			zap.Float64("capital", capital),
			zap.Float64("price", sig.ReferencePrice),
		)
		return OutcomeRejected, nil
	}

	orderID, err := m.ex.PlaceLimitOrder(ctx, m.productID, order.Size, order.Side, order.EntryPrice, true)
	if err != nil {
		m.n.Sendf(ctx, "❌ Order failed: %s %.3f @ %.2f: %v", order.Side.Upper(), order.Size, order.EntryPrice, err)
		return OutcomeFailed, errors.Wrapf(err, "place entry %s %.3f @ %.2f", order.Side, order.Size, order.EntryPrice)
	}
	m.metrics.Orders.WithLabelValues(string(order.Side)).Inc()

	rec := models.TradeRecord{
		Time:       m.clock.Now(),
		OrderID:    orderID,
		ProductID:  m.productID,
		Side:       order.Side,
		Entry:      order.EntryPrice,
		StopLoss:   order.StopLossPrice,
		TakeProfit: order.TakeProfitPrice,
		Size:       order.Size,
	}
	if err := m.journal.Record(ctx, rec); err != nil {
		m.log.Error("journal write failed", zap.String("order_id", orderID), zap.Error(err))
	}

	m.log.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("side", string(order.Side)),
		zap.Float64("entry", order.EntryPrice),
		zap.Float64("sl", order.StopLossPrice),
		zap.Float64("tp", order.TakeProfitPrice),
		zap.Float64("size", order.Size),
	)
	m.n.Sendf(ctx, "✅ %s %.3f @ %.2f\nSL %.2f | TP %.2f\nOrder %s",
		order.Side.Upper(), order.Size, order.EntryPrice, order.StopLossPrice, order.TakeProfitPrice, orderID)

	if _, err := m.trail.Supervise(ctx, *order); err != nil {
		return OutcomePlaced, errors.Wrap(err, "supervise position")
	}
	return OutcomePlaced, nil
}

// cancelStale cancels every live order of the product. Failures are logged and
// the sweep moves on.
func (m *Manager) cancelStale(ctx context.Context) {
	orders, err := m.ex.LiveOrders(ctx, m.productID)
	if err != nil {
		m.log.Warn("list live orders failed", zap.Error(err))
		return
	}
	for _, o := range orders {
		if err := m.ex.CancelOrder(ctx, m.productID, o.ID); err != nil {
			m.log.Warn("cancel order failed", zap.String("order_id", o.ID), zap.Error(err))
			continue
		}
		m.metrics.Cancelled.Inc()
		m.log.Info("cancelled stale order",
			zap.String("order_id", o.ID),
			zap.String("side", string(o.Side)),
			zap.Float64("limit_price", o.LimitPrice),
		)
	}
}
