package signal

import (
	"fmt"
	"math"
	"strings"
)

// Variant selects one of the early-close policies. The set is closed so
// dispatch can be exhaustive.
type Variant uint8

const (
	// VariantA closes when the predicted extreme across both horizons
	// breaches the stop level.
	VariantA Variant = iota
	// VariantB considers the daily horizon only.
	VariantB
	// VariantC considers the hourly horizon only.
	VariantC
	// VariantD requires both horizons to breach.
	VariantD
	// VariantE blends the horizons 0.6 hourly / 0.4 daily, falling back to
	// whichever single horizon is present. Default.
	VariantE
	// VariantF uses a widened hourly band (half the stop distance beyond the
	// stop) or a plain daily breach.
	VariantF
	// VariantG never closes early.
	VariantG
)

// DefaultVariant is used when a run does not pick one explicitly.
const DefaultVariant = VariantE

func (v Variant) String() string {
	if v > VariantG {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return string(rune('A' + v))
}

// ParseVariant maps "A".."G" (case-insensitive) to a Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'G' {
		return 0, fmt.Errorf("unknown exit policy variant %q (A-G)", s)
	}
	return Variant(s[0] - 'A'), nil
}

// ShouldEarlyClose reports whether an open position should be closed before
// its stop level is touched, based on predicted extremes per horizon.
// direction is the side of the open position (Buy = long). Empty prediction
// slices degrade each policy to false rather than failing; Hold direction
// never closes. Pure and stateless.
func ShouldEarlyClose(direction Action, entry, sl float64, hourly, daily []float64, v Variant) bool {
	if direction == Hold {
		return false
	}

	h := finite(hourly)
	d := finite(daily)

	// Longs watch predicted minima falling through the stop; shorts mirror
	// with predicted maxima rising through it.
	long := direction == Buy
	extH, okH := extreme(h, long)
	extD, okD := extreme(d, long)

	breach := func(x float64) bool {
		if long {
			return x < sl
		}
		return x > sl
	}

	switch v {
	case VariantA:
		switch {
		case okH && okD:
			both := extH
			if long && extD < both || !long && extD > both {
				both = extD
			}
			return breach(both)
		case okH:
			return breach(extH)
		case okD:
			return breach(extD)
		}
		return false

	case VariantB:
		return okD && breach(extD)

	case VariantC:
		return okH && breach(extH)

	case VariantD:
		return okH && okD && breach(extH) && breach(extD)

	case VariantE:
		switch {
		case okH && okD:
			return breach(0.6*extH + 0.4*extD)
		case okH:
			return breach(extH)
		case okD:
			return breach(extD)
		}
		return false

	case VariantF:
		band := 0.5 * math.Abs(sl-entry)
		if okH {
			if long && extH < sl-band {
				return true
			}
			if !long && extH > sl+band {
				return true
			}
		}
		return okD && breach(extD)

	case VariantG:
		return false
	}

	return false
}

// extreme returns min for longs, max for shorts.
func extreme(xs []float64, long bool) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	if long {
		return minOf(xs), true
	}
	return maxOf(xs), true
}
