package signal

// Size maps a risk-reward ratio to an order volume in lots. Ratios at or
// above the upper threshold take the maximum volume, at or below the lower
// threshold the minimum, with linear interpolation between. The result is
// then capped by the cash the account can actually commit:
// balance x rel_volume x leverage.
func Size(rr, balance float64, p Params) float64 {
	var volume float64
	span := p.UpperRRThreshold - p.LowerRRThreshold
	switch {
	case rr >= p.UpperRRThreshold:
		volume = p.MaxOrderVolume
	case rr <= p.LowerRRThreshold || span <= 0:
		volume = p.MinOrderVolume
	default:
		frac := (rr - p.LowerRRThreshold) / span
		volume = p.MinOrderVolume + frac*(p.MaxOrderVolume-p.MinOrderVolume)
	}

	maxAffordable := balance * p.RelVolume * p.Leverage
	if volume > maxAffordable {
		volume = maxAffordable
	}
	return volume
}
