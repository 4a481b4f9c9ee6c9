package strategy

import (
	"github.com/harveybc/fxsim/ledger"
	"github.com/harveybc/fxsim/market"
)

// Strategy is called once per bar, before the ledger evaluates stops for
// that bar.
type Strategy interface {
	Name() string
	OnBar(l *ledger.Ledger, i int, bar market.Bar) error
}

// Run executes a full simulation with the given strategy.
func Run(l *ledger.Ledger, s Strategy) (ledger.Summary, error) {
	return l.RunSimulation(func(l *ledger.Ledger, i int, bar market.Bar) error {
		return s.OnBar(l, i, bar)
	})
}

// Noop does nothing. Baseline for wiring tests.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) OnBar(*ledger.Ledger, int, market.Bar) error { return nil }
