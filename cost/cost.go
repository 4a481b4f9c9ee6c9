package cost

import "time"

// Config holds the per-run trading cost parameters. It is immutable for the
// duration of a simulation.
type Config struct {
	SpreadPips       float64
	CommissionPerLot float64
	SlippagePips     float64
	SwapPerLotDay    float64
	PipValue         float64 // price units per pip, e.g. 0.0001 for EUR_USD
	LotSize          float64 // instrument units per lot, e.g. 100_000
	Leverage         float64
}

// SpreadCost is the spread expressed in price units.
func (c Config) SpreadCost() float64 {
	return c.SpreadPips * c.PipValue
}

// SlippageCost is the assumed slippage expressed in price units.
func (c Config) SlippageCost() float64 {
	return c.SlippagePips * c.PipValue
}

// EntryPrice applies spread and slippage to a raw fill price. Both always
// work against the trader: buys fill above the raw price, sells below it.
func (c Config) EntryPrice(raw float64, buy bool) float64 {
	slip := c.SpreadCost() + c.SlippageCost()
	if buy {
		return raw + slip
	}
	return raw - slip
}

// Commission is the round-trip commission for a position of the given size,
// charged once at open regardless of outcome.
func (c Config) Commission(volumeLots float64) float64 {
	return c.CommissionPerLot * volumeLots
}

// Swap is the overnight financing charge for holding a position over the
// given duration. Days are elapsed seconds over 86400; there is no calendar
// rollover awareness.
func (c Config) Swap(volumeLots float64, held time.Duration) float64 {
	days := held.Seconds() / 86400.0
	return c.SwapPerLotDay * volumeLots * days
}

// PriceToPips converts a price delta to pips.
func (c Config) PriceToPips(delta float64) float64 {
	if c.PipValue == 0 {
		return 0
	}
	return delta / c.PipValue
}

// PipsToCurrency converts a pip count to account currency for a position of
// the given size.
func (c Config) PipsToCurrency(pips, volumeLots float64) float64 {
	return pips * c.PipValue * volumeLots * c.LotSize
}
