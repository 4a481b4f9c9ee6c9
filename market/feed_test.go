package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBars(t *testing.T) {
	path := writeFile(t, "bars.csv",
		"time,open,high,low,close\n"+
			"2024-01-01T09:00:00Z,1.1000,1.1010,1.0990,1.1005\n"+
			"2024-01-01T10:00:00Z,1.1005,1.1020,1.1000,1.1015\n")

	bars, err := LoadBars(path, zap.NewNop())
	assert.NoError(t, err)
	assert.Len(t, bars, 2)

	assert.Equal(t, 1.1000, bars[0].Open)
	assert.Equal(t, 1.1010, bars[0].High)
	assert.Equal(t, 1.0990, bars[0].Low)
	assert.Equal(t, 1.1005, bars[0].Close)
	assert.True(t, bars[1].Time.After(bars[0].Time))
}

func TestLoadBarsSkipsMalformedRows(t *testing.T) {
	path := writeFile(t, "bars.csv",
		"2024-01-01T09:00:00Z,1.1000,1.1010,1.0990,1.1005\n"+
			"not-a-time,1.1,1.1,1.1,1.1\n"+
			"2024-01-01T10:00:00Z,1.1005,oops,1.1000,1.1015\n"+
			"2024-01-01T11:00:00Z,1.1015\n"+
			"2024-01-01T12:00:00Z,1.1015,1.1030,1.1010,1.1025\n")

	bars, err := LoadBars(path, zap.NewNop())
	assert.NoError(t, err)
	assert.Len(t, bars, 2)
}

func TestLoadBarsRejectsOutOfOrder(t *testing.T) {
	path := writeFile(t, "bars.csv",
		"2024-01-01T10:00:00Z,1.1,1.1,1.1,1.1\n"+
			"2024-01-01T09:00:00Z,1.1,1.1,1.1,1.1\n")

	_, err := LoadBars(path, zap.NewNop())
	assert.ErrorContains(t, err, "out of order")
}

func TestLoadBarsErrors(t *testing.T) {
	_, err := LoadBars(filepath.Join(t.TempDir(), "missing.csv"), zap.NewNop())
	assert.Error(t, err)

	empty := writeFile(t, "empty.csv", "time,open,high,low,close\n")
	_, err = LoadBars(empty, zap.NewNop())
	assert.ErrorContains(t, err, "no valid bars")
}
