package ledger

import (
	"time"

	"github.com/harveybc/fxsim/market"
)

// Direction is the side of a trade. The numeric values double as the sign of
// the pip PnL formula.
type Direction int8

const (
	Buy  Direction = +1
	Sell Direction = -1
)

func (d Direction) String() string {
	if d == Sell {
		return "sell"
	}
	return "buy"
}

// Close reasons recorded on trades.
const (
	ReasonStopLoss   = "stop_loss"
	ReasonTakeProfit = "take_profit"
	ReasonEndOfData  = "end_of_data"
	ReasonEarlyClose = "early_close"
	ReasonManual     = "manual"
)

// Trade is a single simulated position. A trade is open from OpenOrder until
// its first close, after which it lives in the immutable closed history and
// is never reopened.
type Trade struct {
	ID            int
	Instrument    string
	Direction     Direction
	Volume        float64 // lots
	EntryPrice    float64 // cost-adjusted fill
	RawEntryPrice float64 // price before spread/slippage
	TakeProfit    *float64
	StopLoss      *float64
	OpenTime      time.Time
	Commission    float64

	// Set on close.
	Open        bool
	ClosePrice  float64
	CloseTime   time.Time
	CloseReason string
	Swap        float64
	PnLPips     float64
	PnLUSD      float64
	NetPnL      float64
}

// hitStopLoss reports whether this bar's range touched the stop level.
func (t *Trade) hitStopLoss(bar market.Bar) bool {
	if t.StopLoss == nil {
		return false
	}
	if t.Direction == Buy {
		return bar.Low <= *t.StopLoss
	}
	return bar.High >= *t.StopLoss
}

// hitTakeProfit reports whether this bar's range touched the take level.
func (t *Trade) hitTakeProfit(bar market.Bar) bool {
	if t.TakeProfit == nil {
		return false
	}
	if t.Direction == Buy {
		return bar.High >= *t.TakeProfit
	}
	return bar.Low <= *t.TakeProfit
}
