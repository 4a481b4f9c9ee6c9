package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCSVPredictorRoundTrip(t *testing.T) {
	daily := writeFile(t, "daily.csv",
		"time,p1,p2\n"+
			"2024-01-01T09:00:00Z,1.1050,1.1080\n")
	hourly := writeFile(t, "hourly.csv",
		"2024-01-01T09:00:00Z,1.1010,1.1020,1.1030\n")

	p, err := NewCSVPredictor(daily, hourly, zap.NewNop())
	assert.NoError(t, err)

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	set, err := p.Predictions("EUR_USD", at)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.1050, 1.1080}, set.LongTerm)
	assert.Equal(t, []float64{1.1010, 1.1020, 1.1030}, set.ShortTerm)
}

func TestCSVPredictorMissingTimestampIsEmpty(t *testing.T) {
	daily := writeFile(t, "daily.csv",
		"2024-01-01T09:00:00Z,1.1050\n")

	p, err := NewCSVPredictor(daily, "", zap.NewNop())
	assert.NoError(t, err)

	set, err := p.Predictions("EUR_USD", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, set.LongTerm)
	assert.Empty(t, set.ShortTerm)
}

func TestCSVPredictorSkipsMalformedRows(t *testing.T) {
	daily := writeFile(t, "daily.csv",
		"2024-01-01T09:00:00Z,1.1050\n"+
			"bad-time,1.1\n"+
			"2024-01-01T10:00:00Z,nope\n")

	p, err := NewCSVPredictor(daily, "", zap.NewNop())
	assert.NoError(t, err)
	assert.Len(t, p.daily, 1)
}

func TestStaticPredictor(t *testing.T) {
	p := StaticPredictor{Set: PredictionSet{ShortTerm: []float64{1.1}}}
	set, err := p.Predictions("EUR_USD", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.1}, set.ShortTerm)
}

func TestNewPredictorFactory(t *testing.T) {
	p, err := NewPredictor("none", "", "", zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, StaticPredictor{}, p)

	p, err = NewPredictor("", "", "", zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, StaticPredictor{}, p)

	_, err = NewPredictor("oracle", "", "", zap.NewNop())
	assert.ErrorContains(t, err, "unknown prediction source")

	_, err = NewPredictor("csv", "/no/such/file.csv", "", zap.NewNop())
	assert.Error(t, err)
}
