package ledger

import (
	"strings"
	"time"
)

// OrderParams is the action-agnostic parameter set accepted by ExecuteOrder.
// Open actions read Instrument/Direction/Volume/TakeProfit/StopLoss, close
// actions read OrderID/Reason; Price and Time apply to both.
type OrderParams struct {
	Instrument string
	Direction  Direction
	Volume     float64
	TakeProfit *float64
	StopLoss   *float64
	Price      *float64
	Time       *time.Time
	OrderID    int
	Reason     string
}

// ExecuteOrder is a uniform dispatch surface for orchestrators that drive
// the ledger with generic action/parameter pairs.
func (l *Ledger) ExecuteOrder(action string, p OrderParams) OrderResult {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "open":
		return l.OpenOrder(OpenRequest{
			Instrument: p.Instrument,
			Direction:  p.Direction,
			Volume:     p.Volume,
			TakeProfit: p.TakeProfit,
			StopLoss:   p.StopLoss,
			Price:      p.Price,
			Time:       p.Time,
		})
	case "close":
		return l.CloseOrder(CloseRequest{
			OrderID: p.OrderID,
			Price:   p.Price,
			Reason:  p.Reason,
			Time:    p.Time,
		})
	default:
		return failure("unknown action %q (supported: open, close)", action)
	}
}
