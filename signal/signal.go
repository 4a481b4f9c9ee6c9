package signal

import "math"

// Action is an entry decision.
type Action int8

const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "hold"
	}
}

// Params tunes the entry decision and position sizing.
type Params struct {
	PipCost          float64 // price units per pip
	ProfitThreshold  float64 // minimum profit potential, in pips
	MinDrawdownPips  float64 // floor for the drawdown estimate, in pips
	TPMultiplier     float64
	SLMultiplier     float64
	LowerRRThreshold float64
	UpperRRThreshold float64
	MinOrderVolume   float64 // lots
	MaxOrderVolume   float64 // lots
	Leverage         float64
	RelVolume        float64 // fraction of balance committed per trade
}

// Signal is an ephemeral entry decision. It carries no identity; the ledger
// assigns order ids when a signal is acted on.
type Signal struct {
	Action     Action
	TakeProfit float64
	StopLoss   float64
	Volume     float64
	RR         float64
	EntryPrice float64
	Reason     string
}

// Compute converts daily price predictions into an entry decision. The
// hourly horizon is accepted for interface symmetry with the exit policies
// but plays no role in entries. Compute is pure and never fails: degenerate
// inputs produce a hold.
//
// Both sides are evaluated: the long side measures profit to the predicted
// maximum and drawdown to the predicted minimum, the short side swaps those
// roles. When both sides clear the profit threshold the better risk-reward
// wins; an exact tie goes to the buy side.
func Compute(current float64, daily, hourly []float64, balance float64, p Params) Signal {
	_ = hourly

	preds := finite(daily)
	if len(preds) == 0 {
		return hold(current, "no daily predictions")
	}

	maxD, minD := maxOf(preds), minOf(preds)

	profitBuy := (maxD - current) / p.PipCost
	ddBuy := math.Max((current-minD)/p.PipCost, p.MinDrawdownPips)
	rrBuy := ratio(profitBuy, ddBuy)
	tpBuy := current + p.TPMultiplier*profitBuy*p.PipCost
	slBuy := current - p.SLMultiplier*ddBuy*p.PipCost

	profitSell := (current - minD) / p.PipCost
	ddSell := math.Max((maxD-current)/p.PipCost, p.MinDrawdownPips)
	rrSell := ratio(profitSell, ddSell)
	tpSell := current - p.TPMultiplier*profitSell*p.PipCost
	slSell := current + p.SLMultiplier*ddSell*p.PipCost

	longSignal := profitBuy >= p.ProfitThreshold
	shortSignal := profitSell >= p.ProfitThreshold

	var (
		action Action
		tp, sl float64
		rr     float64
	)
	switch {
	case longSignal && rrBuy >= rrSell:
		action, tp, sl, rr = Buy, tpBuy, slBuy, rrBuy
	case shortSignal && rrSell > rrBuy:
		action, tp, sl, rr = Sell, tpSell, slSell, rrSell
	default:
		return hold(current, "no signal meets threshold")
	}

	volume := Size(rr, balance, p)
	if volume <= 0 {
		return hold(current, "computed volume <= 0")
	}

	return Signal{
		Action:     action,
		TakeProfit: tp,
		StopLoss:   sl,
		Volume:     volume,
		RR:         rr,
		EntryPrice: current,
		Reason:     action.String() + " signal",
	}
}

func hold(current float64, reason string) Signal {
	return Signal{Action: Hold, EntryPrice: current, Reason: reason}
}

func ratio(profit, drawdown float64) float64 {
	if drawdown <= 0 {
		return 0
	}
	return profit / drawdown
}

// finite drops NaN/Inf entries, the encoding used for null predictions.
func finite(xs []float64) []float64 {
	out := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
