package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LoadBars reads OHLC bars from a CSV file with rows of the form
//
//	time,open,high,low,close
//
// where time is RFC3339 or RFC3339Nano. A header row ("time,...") is allowed.
// Malformed rows are logged and skipped; rows whose timestamp goes backwards
// are an error, since the simulator depends on bar order.
func LoadBars(path string, log *zap.Logger) ([]Bar, error) {
	if log == nil {
		log = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		bars     []Bar
		sawFirst bool
		skipped  int
		line     int
	)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bars: %w", err)
		}
		line++
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		b, ok := parseBarRow(row)
		if !ok {
			skipped++
			log.Warn("skipping malformed bar row",
				zap.String("path", path),
				zap.Int("line", line),
				zap.Strings("row", row))
			continue
		}

		if len(bars) > 0 && b.Time.Before(bars[len(bars)-1].Time) {
			return nil, fmt.Errorf("bars out of order at line %d: %s before %s",
				line, b.Time.Format(time.RFC3339), bars[len(bars)-1].Time.Format(time.RFC3339))
		}
		bars = append(bars, b)
	}

	if skipped > 0 {
		log.Warn("bar feed loaded with skipped rows",
			zap.String("path", path),
			zap.Int("bars", len(bars)),
			zap.Int("skipped", skipped))
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no valid bars in %s", path)
	}
	return bars, nil
}

func parseBarRow(row []string) (Bar, bool) {
	if len(row) < 5 {
		return Bar{}, false
	}

	t, err := parseTime(row[0])
	if err != nil {
		return Bar{}, false
	}

	vals := make([]float64, 4)
	for i := 1; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Bar{}, false
		}
		vals[i-1] = v
	}

	return Bar{
		Time:  t,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}, true
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
