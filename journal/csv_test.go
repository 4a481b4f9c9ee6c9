package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string, string) {
	t.Helper()
	dir := t.TempDir()
	trades := filepath.Join(dir, "trades.csv")
	equity := filepath.Join(dir, "equity.csv")
	runs := filepath.Join(dir, "runs.csv")

	j, err := NewCSV(trades, equity, runs)
	assert.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, trades, equity, runs
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	return rows
}

func TestCSVJournalWritesHeaders(t *testing.T) {
	_, trades, equity, runs := newTestCSV(t)

	assert.Equal(t, "run_id", readCSV(t, trades)[0][0])
	assert.Equal(t, []string{"run_id", "time", "cash", "equity", "open_trades"},
		readCSV(t, equity)[0])
	assert.Equal(t, "exit_variant", readCSV(t, runs)[0][5])
}

func TestCSVJournalRecordTrade(t *testing.T) {
	j, trades, _, _ := newTestCSV(t)

	closed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, j.RecordTrade(sampleTrade("run-1", 7, "take_profit", closed)))

	rows := readCSV(t, trades)
	assert.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "run-1", row[0])
	assert.Equal(t, "7", row[1])
	assert.Equal(t, "buy", row[3])
	assert.Equal(t, "2024-01-01T12:00:00Z", row[8])
	assert.Equal(t, "take_profit", row[13])
}

func TestCSVJournalRecordEquityAndRun(t *testing.T) {
	j, _, equity, runs := newTestCSV(t)

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID: "run-1", Time: at, Cash: 10_000, Equity: 10_040, OpenTrades: 2,
	}))
	assert.NoError(t, j.RecordRun(RunRecord{
		RunID: "run-1", Created: at, Strategy: "prediction",
		Instrument: "EUR_USD", Dataset: "bars.csv", ExitVariant: "E",
		InitialCash: 10_000, FinalCash: 10_040, Trades: 2,
	}))

	eqRows := readCSV(t, equity)
	assert.Len(t, eqRows, 2)
	assert.Equal(t, []string{"run-1", "2024-01-01T09:00:00Z", "10000", "10040", "2"}, eqRows[1])

	runRows := readCSV(t, runs)
	assert.Len(t, runRows, 2)
	assert.Equal(t, "prediction", runRows[1][2])
	assert.Equal(t, "E", runRows[1][5])
}

func TestCSVJournalBadPath(t *testing.T) {
	dir := t.TempDir()
	_, err := NewCSV(
		filepath.Join(dir, "missing", "trades.csv"),
		filepath.Join(dir, "equity.csv"),
		filepath.Join(dir, "runs.csv"),
	)
	assert.Error(t, err)
}
