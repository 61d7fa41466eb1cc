package models

import "fmt"

// RiskParameters are fixed for the lifetime of the process.
type RiskParameters struct {
	RiskPct              float64 `yaml:"risk_pct"`               // fraction of capital at risk, 0.10 => 10%
	StopLossPct          float64 `yaml:"stop_loss_pct"`          // fraction of capital used as stop distance
	TakeProfitMultiplier float64 `yaml:"take_profit_multiplier"` // tp budget = sl budget * multiplier
	Leverage             float64 `yaml:"leverage"`
}

func (r RiskParameters) Validate() error {
	if r.RiskPct <= 0 || r.RiskPct > 1 {
		return fmt.Errorf("risk_pct must be in (0, 1], got %v", r.RiskPct)
	}
	if r.StopLossPct <= 0 {
		return fmt.Errorf("stop_loss_pct must be > 0, got %v", r.StopLossPct)
	}
	if r.TakeProfitMultiplier <= 0 {
		return fmt.Errorf("take_profit_multiplier must be > 0, got %v", r.TakeProfitMultiplier)
	}
	if r.Leverage <= 0 {
		return fmt.Errorf("leverage must be > 0, got %v", r.Leverage)
	}
	return nil
}
