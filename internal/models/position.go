package models

import "time"

// Position mirrors the exchange's view of the open position. Size is absolute,
// the direction lives in Side.
type Position struct {
	ProductID  int
	Side       Side
	Size       float64
	MarkPrice  float64
	EntryPrice float64
}

func (p *Position) IsOpen() bool { return p != nil && p.Size != 0 }

// PendingOrder is a resting exchange order that has not been filled yet.
type PendingOrder struct {
	ID         string
	ProductID  int
	Side       Side
	Size       float64
	LimitPrice float64
	State      string
}

// SizedOrder is the entry produced by the position sizer.
type SizedOrder struct {
	Side               Side
	EntryPrice         float64
	Size               float64 // lots, rounded to 3 decimals
	StopLossPrice      float64
	TakeProfitPrice    float64
	TakeProfitDistance float64 // absolute price distance entry -> target
}

// TradeRecord is one line of the audit trail.
type TradeRecord struct {
	Time       time.Time
	OrderID    string
	ProductID  int
	Side       Side
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Size       float64
}
