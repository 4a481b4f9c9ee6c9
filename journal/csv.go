package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	runs   *csv.Writer
	files  []*os.File
}

func NewCSV(tradesPath, equityPath, runsPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	for _, w := range []struct {
		path   string
		dst    **csv.Writer
		header []string
	}{
		{tradesPath, &j.trades, []string{
			"run_id", "order_id", "instrument", "direction", "volume",
			"entry_price", "exit_price", "open_time", "close_time",
			"pnl_pips", "commission", "swap", "net_pnl", "reason"}},
		{equityPath, &j.equity, []string{
			"run_id", "time", "cash", "equity", "open_trades"}},
		{runsPath, &j.runs, []string{
			"run_id", "created", "strategy", "instrument", "dataset",
			"exit_variant", "initial_cash", "final_cash", "total_return_pct",
			"trades", "winners", "losers", "win_rate", "total_pnl",
			"total_commission", "total_swap"}},
	} {
		f, err := os.Create(w.path)
		if err != nil {
			j.Close()
			return nil, err
		}
		j.files = append(j.files, f)

		cw := csv.NewWriter(f)
		if err := cw.Write(w.header); err != nil {
			j.Close()
			return nil, err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			j.Close()
			return nil, err
		}
		*w.dst = cw
	}

	return j, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		strconv.Itoa(t.OrderID),
		t.Instrument,
		t.Direction,
		f(t.Volume),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.PnLPips),
		f(t.Commission),
		f(t.Swap),
		f(t.NetPnL),
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Cash),
		f(e.Equity),
		strconv.Itoa(e.OpenTrades),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Strategy,
		r.Instrument,
		r.Dataset,
		r.ExitVariant,
		f(r.InitialCash),
		f(r.FinalCash),
		f(r.TotalReturnPct),
		strconv.Itoa(r.Trades),
		strconv.Itoa(r.Winners),
		strconv.Itoa(r.Losers),
		f(r.WinRate),
		f(r.TotalPnL),
		f(r.TotalCommission),
		f(r.TotalSwap),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) Close() error {
	var first error
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
