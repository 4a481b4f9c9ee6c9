package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	assert.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleTrade(runID string, orderID int, reason string, closed time.Time) TradeRecord {
	return TradeRecord{
		RunID:      runID,
		OrderID:    orderID,
		Instrument: "EUR_USD",
		Direction:  "buy",
		Volume:     0.5,
		EntryPrice: 1.1003,
		ExitPrice:  1.1053,
		OpenTime:   closed.Add(-2 * time.Hour),
		CloseTime:  closed,
		PnLPips:    50,
		Commission: 3.5,
		Swap:       0.125,
		NetPnL:     246.375,
		Reason:     reason,
	}
}

func TestSQLiteSchema(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	for _, table := range []string{"trades", "equity", "runs"} {
		var name string
		err := j.db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSQLiteTradeRoundTrip(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	closed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	want := sampleTrade("run-1", 1, "take_profit", closed)
	assert.NoError(t, j.RecordTrade(want))
	assert.NoError(t, j.RecordTrade(sampleTrade("run-2", 1, "stop_loss", closed.Add(time.Hour))))

	got, err := j.ListTradesByRun("run-1")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, want.OrderID, got[0].OrderID)
	assert.Equal(t, want.Direction, got[0].Direction)
	assert.Equal(t, want.EntryPrice, got[0].EntryPrice)
	assert.Equal(t, want.NetPnL, got[0].NetPnL)
	assert.True(t, got[0].CloseTime.Equal(closed))
}

func TestSQLiteListTradesByReason(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, j.RecordTrade(sampleTrade("run-1", 1, "stop_loss", base)))
	assert.NoError(t, j.RecordTrade(sampleTrade("run-1", 2, "take_profit", base.Add(time.Hour))))
	assert.NoError(t, j.RecordTrade(sampleTrade("run-1", 3, "stop_loss", base.Add(2*time.Hour))))

	got, err := j.ListTradesByReason("stop_loss")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].OrderID)
	assert.Equal(t, 3, got[1].OrderID)
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		assert.NoError(t, j.RecordTrade(
			sampleTrade("run-1", i+1, "manual", base.Add(time.Duration(i)*time.Hour))))
	}

	got, err := j.ListTradesClosedBetween(base.Add(time.Hour), base.Add(3*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	want := RunRecord{
		RunID:           "run-1",
		Created:         time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Strategy:        "prediction",
		Instrument:      "EUR_USD",
		Dataset:         "bars.csv",
		ExitVariant:     "E",
		InitialCash:     10_000,
		FinalCash:       10_250,
		TotalReturnPct:  2.5,
		Trades:          8,
		Winners:         5,
		Losers:          3,
		WinRate:         62.5,
		TotalPnL:        250,
		TotalCommission: 28,
		TotalSwap:       4.2,
	}
	assert.NoError(t, j.RecordRun(want))

	got, err := j.GetRun("run-1")
	assert.NoError(t, err)
	assert.Equal(t, want.Strategy, got.Strategy)
	assert.Equal(t, want.ExitVariant, got.ExitVariant)
	assert.Equal(t, want.FinalCash, got.FinalCash)
	assert.Equal(t, want.Trades, got.Trades)
	assert.True(t, got.Created.Equal(want.Created))

	_, err = j.GetRun("nope")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteRecordEquity(t *testing.T) {
	t.Parallel()
	j := newTestSQLite(t)

	assert.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID:      "run-1",
		Time:       time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Cash:       10_000,
		Equity:     10_040,
		OpenTrades: 2,
	}))

	var n int
	assert.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM equity WHERE run_id = ?`, "run-1").Scan(&n))
	assert.Equal(t, 1, n)
}
