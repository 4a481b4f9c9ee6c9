package strategy

import (
	"go.uber.org/zap"

	"github.com/harveybc/fxsim/ledger"
	"github.com/harveybc/fxsim/market"
	"github.com/harveybc/fxsim/signal"
)

// Prediction drives entries from multi-horizon price predictions and exits
// from the configured early-close policy. One position at a time: while a
// trade is open only the exit policy runs.
type Prediction struct {
	Instrument string
	Predictor  market.Predictor
	Params     signal.Params
	Variant    signal.Variant
	Log        *zap.Logger
}

func NewPrediction(instrument string, p market.Predictor, params signal.Params, v signal.Variant, log *zap.Logger) *Prediction {
	if log == nil {
		log = zap.NewNop()
	}
	return &Prediction{
		Instrument: instrument,
		Predictor:  p,
		Params:     params,
		Variant:    v,
		Log:        log,
	}
}

func (s *Prediction) Name() string { return "prediction" }

func (s *Prediction) OnBar(l *ledger.Ledger, i int, bar market.Bar) error {
	preds, err := s.Predictor.Predictions(s.Instrument, bar.Time)
	if err != nil {
		// A prediction outage degrades to hold, it never aborts the run.
		s.Log.Warn("prediction lookup failed", zap.Int("bar", i), zap.Error(err))
		return nil
	}

	if open := l.GetOpenTrades(); len(open) > 0 {
		for _, t := range open {
			if t.StopLoss == nil {
				continue
			}
			dir := signal.Buy
			if t.Direction == ledger.Sell {
				dir = signal.Sell
			}
			if signal.ShouldEarlyClose(dir, t.EntryPrice, *t.StopLoss,
				preds.ShortTerm, preds.LongTerm, s.Variant) {
				res := l.CloseOrder(ledger.CloseRequest{
					OrderID: t.ID,
					Reason:  ledger.ReasonEarlyClose,
				})
				if !res.Success {
					s.Log.Warn("early close failed",
						zap.Int("order_id", t.ID), zap.String("error", res.Error))
				}
			}
		}
		return nil
	}

	acct := l.GetAccountSummary()
	sig := signal.Compute(bar.Close, preds.LongTerm, preds.ShortTerm, acct.Cash, s.Params)
	if sig.Action == signal.Hold {
		return nil
	}

	dir := ledger.Buy
	if sig.Action == signal.Sell {
		dir = ledger.Sell
	}
	tp, sl := sig.TakeProfit, sig.StopLoss

	res := l.OpenOrder(ledger.OpenRequest{
		Instrument: s.Instrument,
		Direction:  dir,
		Volume:     sig.Volume,
		TakeProfit: &tp,
		StopLoss:   &sl,
	})
	if !res.Success {
		s.Log.Warn("open failed", zap.Int("bar", i), zap.String("error", res.Error))
		return nil
	}

	s.Log.Debug("opened position",
		zap.Int("order_id", res.OrderID),
		zap.String("direction", dir.String()),
		zap.Float64("entry", res.EntryPrice),
		zap.Float64("rr", sig.RR),
		zap.Float64("volume", sig.Volume))
	return nil
}
