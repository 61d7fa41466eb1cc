package models

import (
	"math"

	"delta_bot/internal/helper"
)

type TrailPhase string

const (
	PhaseAwaitingFill TrailPhase = "awaiting_fill"
	PhaseOpen         TrailPhase = "open"
	PhaseBreakeven    TrailPhase = "breakeven"
	PhaseTrailing     TrailPhase = "trailing"
	PhaseClosed       TrailPhase = "closed"
)

const (
	TrailReasonBreakeven = "breakeven"
	TrailReasonTrailing  = "trailing"
)

// TrailDecision is what one poll asks the controller to do.
type TrailDecision struct {
	Close  bool
	MoveSL bool
	NewSL  float64
	Size   float64 // size of the protective stop, taken from the polled position
	Reason string
}

// TrailState belongs to a single supervised position and is dropped on close.
type TrailState struct {
	Side          Side
	Entry         float64
	TPDistance    float64
	HalfwayPrice  float64
	TrailDistance float64

	HasMovedToBreakeven bool
	Phase               TrailPhase
	LastStop            float64 // last stop accepted by the exchange, 0 if none

	// OnlyImproving suppresses trailing stops that are not strictly better than LastStop.
	OnlyImproving bool
}

func NewTrailState(side Side, entry, tpDistance float64) *TrailState {
	half := tpDistance / 2
	halfway := entry + half
	if side == SideSell {
		halfway = entry - half
	}
	return &TrailState{
		Side:          side,
		Entry:         entry,
		TPDistance:    tpDistance,
		HalfwayPrice:  halfway,
		TrailDistance: half,
		Phase:         PhaseAwaitingFill,
	}
}

// Evaluate looks at one position snapshot. It only moves the phase for fill and
// close; stop related transitions happen in Confirm once the exchange accepted the stop.
func (st *TrailState) Evaluate(pos *Position) TrailDecision {
	if !pos.IsOpen() {
		st.Phase = PhaseClosed
		return TrailDecision{Close: true}
	}
	if st.Phase == PhaseAwaitingFill {
		st.Phase = PhaseOpen
	}
	mark := pos.MarkPrice
	if mark <= 0 || math.IsNaN(mark) || math.IsInf(mark, 0) {
		return TrailDecision{}
	}

	if !st.HasMovedToBreakeven {
		if !st.reachedHalfway(mark) {
			return TrailDecision{}
		}
		return TrailDecision{MoveSL: true, NewSL: st.Entry, Size: pos.Size, Reason: TrailReasonBreakeven}
	}

	var cand float64
	if st.Side == SideBuy {
		cand = helper.Round(mark-st.TrailDistance, 2)
	} else {
		cand = helper.Round(mark+st.TrailDistance, 2)
	}
	if st.OnlyImproving && st.LastStop > 0 && !st.improves(cand) {
		return TrailDecision{}
	}
	return TrailDecision{MoveSL: true, NewSL: cand, Size: pos.Size, Reason: TrailReasonTrailing}
}

// Confirm records a stop the exchange accepted. HasMovedToBreakeven is never reset.
func (st *TrailState) Confirm(dec TrailDecision) {
	if !dec.MoveSL {
		return
	}
	st.LastStop = dec.NewSL
	switch dec.Reason {
	case TrailReasonBreakeven:
		st.HasMovedToBreakeven = true
		st.Phase = PhaseBreakeven
	case TrailReasonTrailing:
		st.Phase = PhaseTrailing
	}
}

func (st *TrailState) reachedHalfway(mark float64) bool {
	if st.Side == SideBuy {
		return mark >= st.HalfwayPrice
	}
	return mark <= st.HalfwayPrice
}

func (st *TrailState) improves(candidate float64) bool {
	if st.Side == SideBuy {
		return candidate > st.LastStop
	}
	return candidate < st.LastStop
}
