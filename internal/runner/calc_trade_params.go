package runner

import (
	"math"

	"delta_bot/internal/helper"
	"delta_bot/internal/models"

	"github.com/pkg/errors"
)

// CalcSizedOrder converts capital and the fixed risk parameters into an entry.
//
//	riskAmount = capital * RiskPct
//	slBudget   = capital * StopLossPct          (price distance to the stop)
//	tpBudget   = slBudget * TakeProfitMultiplier
//	size       = round(riskAmount / (slBudget * Leverage), 3)
//
// A nil order with a nil error means the entry is skipped: size rounded to zero,
// or there is no capital or price to size against.
func CalcSizedOrder(
	capital float64,
	entryPrice float64,
	side models.Side,
	rp models.RiskParameters,
) (*models.SizedOrder, error) {
	if !side.Valid() {
		return nil, errors.Wrapf(models.ErrUnsupportedSide, "size order: %q", side)
	}
	if capital <= 0 || entryPrice <= 0 {
		return nil, nil
	}

	riskAmount := capital * rp.RiskPct
	slBudget := capital * rp.StopLossPct
	tpBudget := slBudget * rp.TakeProfitMultiplier

	denom := slBudget * rp.Leverage
	if denom <= 0 {
		return nil, nil
	}
	size := helper.Round(riskAmount/denom, 3)
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, nil
	}

	var sl, tp float64
	if side == models.SideBuy {
		sl = entryPrice - slBudget
		tp = entryPrice + tpBudget
	} else {
		sl = entryPrice + slBudget
		tp = entryPrice - tpBudget
	}

	return &models.SizedOrder{
		Side:               side,
		EntryPrice:         entryPrice,
		Size:               size,
		StopLossPrice:      helper.Round(sl, 2),
		TakeProfitPrice:    helper.Round(tp, 2),
		TakeProfitDistance: tpBudget,
	}, nil
}
