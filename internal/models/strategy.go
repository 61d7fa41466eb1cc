package models

import (
	"errors"
	"strings"
	"time"
)

// Direction is the outcome of one signal evaluation.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

type Signal struct {
	Direction      Direction
	ReferencePrice float64 // latest close
	Time           time.Time
	Reason         string
}

// Side of an order as the exchange spells it.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) Upper() string { return strings.ToUpper(string(s)) }

// Side maps a directional signal to the entry side. ok is false for DirectionNone.
func (d Direction) Side() (Side, bool) {
	switch d {
	case DirectionBuy:
		return SideBuy, true
	case DirectionSell:
		return SideSell, true
	default:
		return "", false
	}
}

// ErrUnsupportedSide is a programming error: callers must only pass SideBuy or SideSell.
var ErrUnsupportedSide = errors.New("unsupported order side")
