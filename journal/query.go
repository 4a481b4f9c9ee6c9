package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetRun returns a single run summary by id.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, instrument, dataset, exit_variant,
		       initial_cash, final_cash, total_return_pct, trades, winners,
		       losers, win_rate, total_pnl, total_commission, total_swap
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID, &rec.Created, &rec.Strategy, &rec.Instrument,
		&rec.Dataset, &rec.ExitVariant, &rec.InitialCash, &rec.FinalCash,
		&rec.TotalReturnPct, &rec.Trades, &rec.Winners, &rec.Losers,
		&rec.WinRate, &rec.TotalPnL, &rec.TotalCommission, &rec.TotalSwap,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListTradesByRun returns the trades journaled for one run, in close order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT run_id, order_id, instrument, direction, volume, entry_price,
		       exit_price, open_time, close_time, pnl_pips, commission, swap,
		       net_pnl, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY close_time ASC, order_id ASC`, runID)
}

// ListTradesByReason returns all trades closed with the given reason.
func (j *SQLite) ListTradesByReason(reason string) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT run_id, order_id, instrument, direction, volume, entry_price,
		       exit_price, open_time, close_time, pnl_pips, commission, swap,
		       net_pnl, reason
		FROM trades
		WHERE reason = ?
		ORDER BY close_time ASC, order_id ASC`, reason)
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT run_id, order_id, instrument, direction, volume, entry_price,
		       exit_price, open_time, close_time, pnl_pips, commission, swap,
		       net_pnl, reason
		FROM trades
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC, order_id ASC`, start, end)
}

func (j *SQLite) listTrades(query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.RunID, &rec.OrderID, &rec.Instrument, &rec.Direction,
			&rec.Volume, &rec.EntryPrice, &rec.ExitPrice, &rec.OpenTime,
			&rec.CloseTime, &rec.PnLPips, &rec.Commission, &rec.Swap,
			&rec.NetPnL, &rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
