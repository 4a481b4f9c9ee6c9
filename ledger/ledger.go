package ledger

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/harveybc/fxsim/cost"
	"github.com/harveybc/fxsim/journal"
	"github.com/harveybc/fxsim/market"
)

// Account is the simulated trading account. Cash changes only at open
// (commission debit) and close (net PnL credit); Equity is cash plus the
// unrealized PnL of all open trades at the latest processed bar.
type Account struct {
	Cash   float64
	Equity float64
}

// AccountSummary is the read-only account view exposed to strategies.
type AccountSummary struct {
	Cash       float64
	Equity     float64
	OpenTrades int
}

// OrderResult is the structured outcome of a ledger mutation. Failed
// operations report Success=false with Error set and never mutate state;
// only setup problems surface as Go errors elsewhere.
type OrderResult struct {
	Success    bool
	Error      string
	OrderID    int
	EntryPrice float64
	ClosePrice float64
	NetPnL     float64
}

func failure(format string, args ...any) OrderResult {
	return OrderResult{Error: fmt.Sprintf(format, args...)}
}

// OpenRequest are the parameters for OpenOrder. Price and Time default to the
// current bar's close and timestamp.
type OpenRequest struct {
	Instrument string
	Direction  Direction
	Volume     float64
	TakeProfit *float64
	StopLoss   *float64
	Price      *float64
	Time       *time.Time
}

// CloseRequest are the parameters for CloseOrder. Price and Time default to
// the current bar's close and timestamp.
type CloseRequest struct {
	OrderID int
	Price   *float64
	Reason  string
	Time    *time.Time
}

// StrategyFunc is invoked once per bar, before stop/take evaluation for that
// bar. The current bar is already visible to the ledger, so orders opened
// here fill at this bar's close.
type StrategyFunc func(l *Ledger, i int, bar market.Bar) error

// Ledger simulates market execution of orders against a pre-loaded bar
// sequence for one logical account. A Ledger is a single-writer object:
// concurrent backtests need independent instances.
type Ledger struct {
	cfg  cost.Config
	bars []market.Bar

	initialCash float64
	acct        Account

	barIdx int // latest visible bar, -1 before the first
	trades map[int]*Trade
	closed []*Trade
	nextID int

	journal journal.Journal
	runID   string
	log     *zap.Logger
}

// New builds a ledger over an ordered bar sequence.
func New(cfg cost.Config, initialCash float64, bars []market.Bar) *Ledger {
	l := &Ledger{
		cfg:         cfg,
		bars:        bars,
		initialCash: initialCash,
		log:         zap.NewNop(),
	}
	l.reset()
	return l
}

// SetLogger attaches a logger for journaling failures and run progress.
func (l *Ledger) SetLogger(log *zap.Logger) {
	if log != nil {
		l.log = log
	}
}

// SetJournal attaches a journal; every close is recorded as a trade and every
// tick as an equity snapshot, tagged with runID. Journaling failures are
// logged, never fatal to a run.
func (l *Ledger) SetJournal(j journal.Journal, runID string) {
	l.journal = j
	l.runID = runID
}

func (l *Ledger) reset() {
	l.acct = Account{Cash: l.initialCash, Equity: l.initialCash}
	l.barIdx = -1
	l.trades = make(map[int]*Trade)
	l.closed = nil
	l.nextID = 1
}

// CurrentBar returns the latest visible bar, if any.
func (l *Ledger) CurrentBar() (market.Bar, bool) {
	if l.barIdx < 0 || l.barIdx >= len(l.bars) {
		return market.Bar{}, false
	}
	return l.bars[l.barIdx], true
}

// CurrentPrice returns the latest visible bar's close, if any.
func (l *Ledger) CurrentPrice() (float64, bool) {
	bar, ok := l.CurrentBar()
	if !ok {
		return 0, false
	}
	return bar.Close, true
}

// GetAccountSummary returns the account state after the last mutation.
func (l *Ledger) GetAccountSummary() AccountSummary {
	return AccountSummary{
		Cash:       l.acct.Cash,
		Equity:     l.acct.Equity,
		OpenTrades: len(l.trades),
	}
}

// GetOpenTrades returns copies of all open trades, ordered by id.
func (l *Ledger) GetOpenTrades() []Trade {
	out := make([]Trade, 0, len(l.trades))
	for _, id := range l.openIDs() {
		out = append(out, *l.trades[id])
	}
	return out
}

// GetTradeHistory returns copies of all closed trades, in close order.
func (l *Ledger) GetTradeHistory() []Trade {
	out := make([]Trade, len(l.closed))
	for i, t := range l.closed {
		out[i] = *t
	}
	return out
}

func (l *Ledger) openIDs() []int {
	ids := make([]int, 0, len(l.trades))
	for id := range l.trades {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// OpenOrder opens a new position. The fill price is the request price or the
// current bar's close, adjusted for spread and slippage against the trader;
// commission is debited from cash immediately.
func (l *Ledger) OpenOrder(req OpenRequest) OrderResult {
	raw, ok := l.resolvePrice(req.Price)
	if !ok {
		return failure("no price available")
	}

	entry := l.cfg.EntryPrice(raw, req.Direction == Buy)
	commission := l.cfg.Commission(req.Volume)

	t := &Trade{
		ID:            l.nextID,
		Instrument:    req.Instrument,
		Direction:     req.Direction,
		Volume:        req.Volume,
		EntryPrice:    entry,
		RawEntryPrice: raw,
		TakeProfit:    req.TakeProfit,
		StopLoss:      req.StopLoss,
		OpenTime:      l.resolveTime(req.Time),
		Commission:    commission,
		Open:          true,
	}
	l.nextID++
	l.trades[t.ID] = t

	l.acct.Cash -= commission
	l.updateEquity()

	return OrderResult{Success: true, OrderID: t.ID, EntryPrice: entry}
}

// CloseOrder closes an open position, realizes its PnL net of swap, and
// moves it to the closed history. Unknown or already-closed ids fail without
// touching account state.
func (l *Ledger) CloseOrder(req CloseRequest) OrderResult {
	t, ok := l.trades[req.OrderID]
	if !ok {
		return failure("order %d not found", req.OrderID)
	}

	price, ok := l.resolvePrice(req.Price)
	if !ok {
		return failure("no price available")
	}

	closeTime := l.resolveTime(req.Time)
	if closeTime.IsZero() {
		closeTime = t.OpenTime
	}

	reason := req.Reason
	if reason == "" {
		reason = ReasonManual
	}

	l.closeTrade(t, price, closeTime, reason)
	l.updateEquity()

	return OrderResult{
		Success:    true,
		OrderID:    t.ID,
		EntryPrice: t.EntryPrice,
		ClosePrice: price,
		NetPnL:     t.NetPnL,
	}
}

// ModifyOrder updates the stop/take levels of an open trade. Nil leaves a
// level unchanged.
func (l *Ledger) ModifyOrder(orderID int, tp, sl *float64) OrderResult {
	t, ok := l.trades[orderID]
	if !ok {
		return failure("order %d not found", orderID)
	}
	if tp != nil {
		v := *tp
		t.TakeProfit = &v
	}
	if sl != nil {
		v := *sl
		t.StopLoss = &v
	}
	return OrderResult{Success: true, OrderID: orderID, EntryPrice: t.EntryPrice}
}

// closeTrade realizes a trade at the given price and credits net PnL to cash.
// PnL is directional pips converted to currency; swap accrues per lot-day
// held.
func (l *Ledger) closeTrade(t *Trade, price float64, closeTime time.Time, reason string) {
	pips := float64(t.Direction) * l.cfg.PriceToPips(price-t.EntryPrice)
	pnlUSD := l.cfg.PipsToCurrency(pips, t.Volume)
	swap := l.cfg.Swap(t.Volume, closeTime.Sub(t.OpenTime))

	t.Open = false
	t.ClosePrice = price
	t.CloseTime = closeTime
	t.CloseReason = reason
	t.PnLPips = pips
	t.PnLUSD = pnlUSD
	t.Swap = swap
	t.NetPnL = pnlUSD - swap

	l.acct.Cash += t.NetPnL

	delete(l.trades, t.ID)
	l.closed = append(l.closed, t)

	if l.journal != nil {
		err := l.journal.RecordTrade(journal.TradeRecord{
			RunID:      l.runID,
			OrderID:    t.ID,
			Instrument: t.Instrument,
			Direction:  t.Direction.String(),
			Volume:     t.Volume,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ClosePrice,
			OpenTime:   t.OpenTime,
			CloseTime:  t.CloseTime,
			PnLPips:    t.PnLPips,
			Commission: t.Commission,
			Swap:       t.Swap,
			NetPnL:     t.NetPnL,
			Reason:     t.CloseReason,
		})
		if err != nil {
			l.log.Warn("journal trade", zap.Int("order_id", t.ID), zap.Error(err))
		}
	}
}

// Tick advances to the next bar and applies stop/take rules to every open
// trade. It returns the trades closed by this tick.
func (l *Ledger) Tick() []Trade {
	return l.TickAt(l.barIdx + 1)
}

// TickAt processes the bar at index i. Stop-loss is checked before
// take-profit; the first level touched closes the trade at that level's
// price, and a trade closes at most once per tick.
func (l *Ledger) TickAt(i int) []Trade {
	if i < 0 || i >= len(l.bars) {
		return nil
	}
	l.barIdx = i
	bar := l.bars[i]

	var closedNow []Trade
	for _, id := range l.openIDs() {
		t := l.trades[id]
		switch {
		case t.hitStopLoss(bar):
			l.closeTrade(t, *t.StopLoss, bar.Time, ReasonStopLoss)
			closedNow = append(closedNow, *t)
		case t.hitTakeProfit(bar):
			l.closeTrade(t, *t.TakeProfit, bar.Time, ReasonTakeProfit)
			closedNow = append(closedNow, *t)
		}
	}

	l.updateEquity()

	if l.journal != nil {
		err := l.journal.RecordEquity(journal.EquitySnapshot{
			RunID:      l.runID,
			Time:       bar.Time,
			Cash:       l.acct.Cash,
			Equity:     l.acct.Equity,
			OpenTrades: len(l.trades),
		})
		if err != nil {
			l.log.Warn("journal equity", zap.Time("bar", bar.Time), zap.Error(err))
		}
	}

	return closedNow
}

// RunSimulation resets the ledger and replays every bar in order, invoking
// the strategy before evaluating stops for that bar. Whatever remains open
// after the last bar is force-closed at its close price.
func (l *Ledger) RunSimulation(strategy StrategyFunc) (Summary, error) {
	l.reset()

	for i, bar := range l.bars {
		l.barIdx = i
		if strategy != nil {
			if err := strategy(l, i, bar); err != nil {
				return Summary{}, fmt.Errorf("strategy at bar %d: %w", i, err)
			}
		}
		l.TickAt(i)
	}

	if len(l.bars) > 0 {
		last := l.bars[len(l.bars)-1]
		for _, id := range l.openIDs() {
			l.closeTrade(l.trades[id], last.Close, last.Time, ReasonEndOfData)
		}
		l.updateEquity()
	}

	return l.summarize(), nil
}

// updateEquity recomputes equity as cash plus unrealized PnL of open trades
// marked at the latest bar close. Unrealized PnL carries no cost deductions.
func (l *Ledger) updateEquity() {
	eq := l.acct.Cash
	if close, ok := l.CurrentPrice(); ok {
		for _, t := range l.trades {
			pips := float64(t.Direction) * l.cfg.PriceToPips(close-t.EntryPrice)
			eq += l.cfg.PipsToCurrency(pips, t.Volume)
		}
	}
	l.acct.Equity = eq
}

func (l *Ledger) resolvePrice(explicit *float64) (float64, bool) {
	if explicit != nil {
		return *explicit, true
	}
	return l.CurrentPrice()
}

func (l *Ledger) resolveTime(explicit *time.Time) time.Time {
	if explicit != nil {
		return *explicit
	}
	if bar, ok := l.CurrentBar(); ok {
		return bar.Time
	}
	return time.Time{}
}
