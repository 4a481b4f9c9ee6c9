package journal

import "time"

// TradeRecord is one closed trade as persisted by a journal.
type TradeRecord struct {
	RunID      string
	OrderID    int
	Instrument string
	Direction  string
	Volume     float64
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	PnLPips    float64
	Commission float64
	Swap       float64
	NetPnL     float64
	Reason     string
}

// EquitySnapshot captures account state after a bar has been processed.
type EquitySnapshot struct {
	RunID      string
	Time       time.Time
	Cash       float64
	Equity     float64
	OpenTrades int
}

// RunRecord summarizes a completed simulation run.
type RunRecord struct {
	RunID           string
	Created         time.Time
	Strategy        string
	Instrument      string
	Dataset         string
	ExitVariant     string
	InitialCash     float64
	FinalCash       float64
	TotalReturnPct  float64
	Trades          int
	Winners         int
	Losers          int
	WinRate         float64
	TotalPnL        float64
	TotalCommission float64
	TotalSwap       float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	RecordRun(RunRecord) error
	Close() error
}
