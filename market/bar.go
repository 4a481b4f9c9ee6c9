package market

import "time"

// Bar is a single OHLC price bar. Bars are immutable once loaded and are
// supplied pre-ordered by timestamp.
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}
