package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics exported on /metrics:
//   - bot_cycles_total{outcome}       scheduler cycles by outcome
//   - bot_cycle_errors_total          cycles that ended in a fault
//   - bot_orders_total{side}          entry orders accepted by the exchange
//   - bot_stop_updates_total{reason}  protective stops accepted (breakeven|trailing)
//   - bot_cancelled_orders_total      stale orders cancelled by the sweep
//   - bot_balance_usd                 last observed available balance
type Metrics struct {
	Cycles      *prometheus.CounterVec
	CycleErrors prometheus.Counter
	Orders      *prometheus.CounterVec
	StopUpdates *prometheus.CounterVec
	Cancelled   prometheus.Counter
	Balance     prometheus.Gauge
}

func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bot_cycles_total", Help: "Scheduler cycles by outcome"},
			[]string{"outcome"},
		),
		CycleErrors: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "bot_cycle_errors_total", Help: "Cycles that ended in a fault"},
		),
		Orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bot_orders_total", Help: "Entry orders placed"},
			[]string{"side"},
		),
		StopUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bot_stop_updates_total", Help: "Protective stop orders placed"},
			[]string{"reason"},
		),
		Cancelled: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "bot_cancelled_orders_total", Help: "Stale orders cancelled"},
		),
		Balance: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "bot_balance_usd", Help: "Available balance of the settlement asset"},
		),
	}
	reg.MustRegister(m.Cycles, m.CycleErrors, m.Orders, m.StopUpdates, m.Cancelled, m.Balance)
	return m
}
