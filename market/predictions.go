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

// PredictionSet holds predicted future prices per horizon. ShortTerm is the
// hourly horizon, LongTerm the daily one. Either slice may be empty when the
// source has nothing for a timestamp.
type PredictionSet struct {
	ShortTerm []float64
	LongTerm  []float64
}

// Predictor supplies predicted future prices for an instrument at a point in
// time. Implementations must be safe for concurrent use.
type Predictor interface {
	Predictions(instrument string, t time.Time) (PredictionSet, error)
}

// StaticPredictor returns the same PredictionSet for every lookup. Useful for
// tests and dry runs.
type StaticPredictor struct {
	Set PredictionSet
}

func (p StaticPredictor) Predictions(string, time.Time) (PredictionSet, error) {
	return p.Set, nil
}

// CSVPredictor serves predictions from per-timestamp CSV rows loaded up
// front. Each row is
//
//	time,p1,p2,...,pN
//
// giving the predicted prices for the N steps following that timestamp.
// Lookups for timestamps not present return an empty set, which downstream
// decision logic treats as "hold".
type CSVPredictor struct {
	daily  map[int64][]float64
	hourly map[int64][]float64
}

// NewCSVPredictor loads the daily (long_term) and hourly (short_term)
// prediction files. Either path may be empty, leaving that horizon without
// predictions. Malformed rows are logged and skipped.
func NewCSVPredictor(dailyPath, hourlyPath string, log *zap.Logger) (*CSVPredictor, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &CSVPredictor{
		daily:  make(map[int64][]float64),
		hourly: make(map[int64][]float64),
	}

	if dailyPath != "" {
		if err := loadPredictionRows(dailyPath, p.daily, log); err != nil {
			return nil, fmt.Errorf("daily predictions: %w", err)
		}
	}
	if hourlyPath != "" {
		if err := loadPredictionRows(hourlyPath, p.hourly, log); err != nil {
			return nil, fmt.Errorf("hourly predictions: %w", err)
		}
	}
	return p, nil
}

func (p *CSVPredictor) Predictions(_ string, t time.Time) (PredictionSet, error) {
	key := t.UTC().Unix()
	return PredictionSet{
		ShortTerm: p.hourly[key],
		LongTerm:  p.daily[key],
	}, nil
}

func loadPredictionRows(path string, dst map[int64][]float64, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	sawFirst := false
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if len(row) == 0 {
			continue
		}
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		t, err := parseTime(row[0])
		if err != nil {
			log.Warn("skipping malformed prediction row",
				zap.String("path", path), zap.Int("line", line))
			continue
		}

		vals := make([]float64, 0, len(row)-1)
		bad := false
		for _, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				bad = true
				break
			}
			vals = append(vals, v)
		}
		if bad {
			log.Warn("skipping malformed prediction row",
				zap.String("path", path), zap.Int("line", line))
			continue
		}

		dst[t.UTC().Unix()] = vals
	}
}

// NewPredictor resolves a prediction source by name. Unknown names are a
// setup error.
func NewPredictor(name, dailyPath, hourlyPath string, log *zap.Logger) (Predictor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return NewCSVPredictor(dailyPath, hourlyPath, log)
	case "none", "":
		return StaticPredictor{}, nil
	default:
		return nil, fmt.Errorf("unknown prediction source %q (supported: csv, none)", name)
	}
}
