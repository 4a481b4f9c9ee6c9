package strategy

import (
	"github.com/harveybc/fxsim/ledger"
	"github.com/harveybc/fxsim/market"
)

// Alternate opens a buy, then a sell, then a buy again whenever the account
// is flat. The alternation lives in an explicit counter field rather than
// hidden shared state, so independent instances never bleed into each other.
// Meant as a wiring-test strategy.
type Alternate struct {
	Instrument string
	Volume     float64

	opened int // orders opened so far; even -> next is a buy
}

func (s *Alternate) Name() string { return "alternate" }

func (s *Alternate) OnBar(l *ledger.Ledger, i int, bar market.Bar) error {
	if acct := l.GetAccountSummary(); acct.OpenTrades > 0 {
		return nil
	}

	dir := ledger.Buy
	if s.opened%2 == 1 {
		dir = ledger.Sell
	}

	res := l.OpenOrder(ledger.OpenRequest{
		Instrument: s.Instrument,
		Direction:  dir,
		Volume:     s.Volume,
	})
	if res.Success {
		s.opened++
	}
	return nil
}
