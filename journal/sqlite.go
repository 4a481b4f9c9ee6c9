package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, order_id, instrument, direction, volume, entry_price, exit_price,
		 open_time, close_time, pnl_pips, commission, swap, net_pnl, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.OrderID, t.Instrument, t.Direction, t.Volume,
		t.EntryPrice, t.ExitPrice, t.OpenTime, t.CloseTime,
		t.PnLPips, t.Commission, t.Swap, t.NetPnL, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, time, cash, equity, open_trades)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Time, e.Cash, e.Equity, e.OpenTrades,
	)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, instrument, dataset, exit_variant,
		 initial_cash, final_cash, total_return_pct, trades, winners, losers,
		 win_rate, total_pnl, total_commission, total_swap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Instrument, r.Dataset, r.ExitVariant,
		r.InitialCash, r.FinalCash, r.TotalReturnPct, r.Trades, r.Winners,
		r.Losers, r.WinRate, r.TotalPnL, r.TotalCommission, r.TotalSwap,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
