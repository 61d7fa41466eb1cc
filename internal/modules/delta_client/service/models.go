package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type apiError struct {
	Code    string `json:"code"`
	Context any    `json:"context"`
}

func (e *apiError) String() string {
	if e == nil {
		return "unknown error"
	}
	if e.Context != nil {
		return fmt.Sprintf("code=%s context=%v", e.Code, e.Context)
	}
	return "code=" + e.Code
}

// flexFloat accepts numbers sent either as json numbers or as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("parse number %q: not finite", s)
	}
	*f = flexFloat(v)
	return nil
}

// flexID accepts ids sent either as json numbers or as strings.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*id = flexID(s)
	return nil
}

type orderRequest struct {
	ProductID     int     `json:"product_id"`
	Size          float64 `json:"size"`
	Side          string  `json:"side"`
	LimitPrice    float64 `json:"limit_price"`
	OrderType     string  `json:"order_type"`
	PostOnly      string  `json:"post_only,omitempty"`
	StopPrice     float64 `json:"stop_price,omitempty"`
	StopOrderType string  `json:"stop_order_type,omitempty"`
	ClientOrderID string  `json:"client_order_id,omitempty"`
}

type orderResult struct {
	ID            flexID    `json:"id"`
	ClientOrderID string    `json:"client_order_id"`
	ProductID     int       `json:"product_id"`
	Side          string    `json:"side"`
	Size          flexFloat `json:"size"`
	LimitPrice    flexFloat `json:"limit_price"`
	State         string    `json:"state"`
}

type positionResult struct {
	ProductID  int       `json:"product_id"`
	Size       flexFloat `json:"size"` // signed: negative is short
	EntryPrice flexFloat `json:"entry_price"`
	MarkPrice  flexFloat `json:"mark_price"`
}

type balanceResult struct {
	AssetID          int       `json:"asset_id"`
	AssetSymbol      string    `json:"asset_symbol"`
	Balance          flexFloat `json:"balance"`
	AvailableBalance flexFloat `json:"available_balance"`
}
