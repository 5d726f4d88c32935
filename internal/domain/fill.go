package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type FillSide string

const (
	FillSide_Buy  FillSide = "buy"
	FillSide_Sell FillSide = "sell"
)

// Fill is one executed trade leg. ClosedPnl is zero unless the fill closed
// a position. Fills are immutable once ingested.
type Fill struct {
	Instrument  string          `json:"instrument"`
	Price       decimal.Decimal `json:"price"`
	Size        decimal.Decimal `json:"size"`
	Side        FillSide        `json:"side"`
	TimestampMs int64           `json:"timestampMs"`
	ClosedPnl   decimal.Decimal `json:"closedPnl"`
	Fee         decimal.Decimal `json:"fee"`
}

func (f Fill) Validate() error {
	if f.Instrument == "" {
		return fmt.Errorf("fill has empty instrument")
	}
	if f.Side != FillSide_Buy && f.Side != FillSide_Sell {
		return fmt.Errorf("fill has unknown side %q", f.Side)
	}
	if f.Price.IsNegative() {
		return fmt.Errorf("fill has negative price %s", f.Price)
	}
	if f.Size.IsNegative() {
		return fmt.Errorf("fill has negative size %s", f.Size)
	}
	if f.TimestampMs < 0 {
		return fmt.Errorf("fill has negative timestamp %d", f.TimestampMs)
	}
	return nil
}

// Notional is the traded value of the leg, price * size.
func (f Fill) Notional() decimal.Decimal {
	return f.Price.Mul(f.Size)
}

// IsClosing reports whether the fill closed a position.
func (f Fill) IsClosing() bool {
	return !f.ClosedPnl.IsZero()
}
