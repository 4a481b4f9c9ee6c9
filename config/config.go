package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harveybc/fxsim/cost"
	"github.com/harveybc/fxsim/signal"
)

// Config is the complete simulation configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Costs   CostConfig    `json:"costs" yaml:"costs"`
	Signal  SignalConfig  `json:"signal" yaml:"signal"`
	Exit    ExitConfig    `json:"exit" yaml:"exit"`
	Data    DataConfig    `json:"data" yaml:"data"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Currency string  `json:"currency" yaml:"currency"`
	Cash     float64 `json:"cash" yaml:"cash"`
}

// CostConfig mirrors cost.Config with serialization tags.
type CostConfig struct {
	SpreadPips       float64 `json:"spread_pips" yaml:"spread_pips"`
	CommissionPerLot float64 `json:"commission_per_lot" yaml:"commission_per_lot"`
	SlippagePips     float64 `json:"slippage_pips" yaml:"slippage_pips"`
	SwapPerLotDay    float64 `json:"swap_per_lot_day" yaml:"swap_per_lot_day"`
	PipValue         float64 `json:"pip_value" yaml:"pip_value"`
	LotSize          float64 `json:"lot_size" yaml:"lot_size"`
	Leverage         float64 `json:"leverage" yaml:"leverage"`
}

func (c CostConfig) ToModel() cost.Config {
	return cost.Config{
		SpreadPips:       c.SpreadPips,
		CommissionPerLot: c.CommissionPerLot,
		SlippagePips:     c.SlippagePips,
		SwapPerLotDay:    c.SwapPerLotDay,
		PipValue:         c.PipValue,
		LotSize:          c.LotSize,
		Leverage:         c.Leverage,
	}
}

// SignalConfig contains entry-decision parameters.
type SignalConfig struct {
	ProfitThreshold  float64 `json:"profit_threshold" yaml:"profit_threshold"`
	MinDrawdownPips  float64 `json:"min_drawdown_pips" yaml:"min_drawdown_pips"`
	TPMultiplier     float64 `json:"tp_multiplier" yaml:"tp_multiplier"`
	SLMultiplier     float64 `json:"sl_multiplier" yaml:"sl_multiplier"`
	LowerRRThreshold float64 `json:"lower_rr_threshold" yaml:"lower_rr_threshold"`
	UpperRRThreshold float64 `json:"upper_rr_threshold" yaml:"upper_rr_threshold"`
	MinOrderVolume   float64 `json:"min_order_volume" yaml:"min_order_volume"`
	MaxOrderVolume   float64 `json:"max_order_volume" yaml:"max_order_volume"`
	RelVolume        float64 `json:"rel_volume" yaml:"rel_volume"`
}

// ToParams builds signal.Params; pip value and leverage come from the cost
// section so the two layers cannot drift.
func (c SignalConfig) ToParams(costs CostConfig) signal.Params {
	return signal.Params{
		PipCost:          costs.PipValue,
		ProfitThreshold:  c.ProfitThreshold,
		MinDrawdownPips:  c.MinDrawdownPips,
		TPMultiplier:     c.TPMultiplier,
		SLMultiplier:     c.SLMultiplier,
		LowerRRThreshold: c.LowerRRThreshold,
		UpperRRThreshold: c.UpperRRThreshold,
		MinOrderVolume:   c.MinOrderVolume,
		MaxOrderVolume:   c.MaxOrderVolume,
		Leverage:         costs.Leverage,
		RelVolume:        c.RelVolume,
	}
}

// ExitConfig selects the early-close policy.
type ExitConfig struct {
	Variant string `json:"variant" yaml:"variant"`
}

// DataConfig names the input datasets.
type DataConfig struct {
	Instrument        string `json:"instrument" yaml:"instrument"`
	Bars              string `json:"bars" yaml:"bars"`
	Predictor         string `json:"predictor" yaml:"predictor"`
	DailyPredictions  string `json:"daily_predictions,omitempty" yaml:"daily_predictions,omitempty"`
	HourlyPredictions string `json:"hourly_predictions,omitempty" yaml:"hourly_predictions,omitempty"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
}

// LoadFromFile loads configuration from a file, YAML first with a JSON
// fallback, and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, YAML or JSON by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks setup invariants. Violations here are fatal to setup;
// everything past this point uses structured results instead of errors.
func (c *Config) Validate() error {
	if c.Account.Cash <= 0 {
		return fmt.Errorf("account.cash must be positive")
	}
	if c.Costs.PipValue <= 0 {
		return fmt.Errorf("costs.pip_value must be positive")
	}
	if c.Costs.LotSize <= 0 {
		return fmt.Errorf("costs.lot_size must be positive")
	}
	if c.Costs.SpreadPips < 0 || c.Costs.SlippagePips < 0 {
		return fmt.Errorf("costs.spread_pips and costs.slippage_pips must not be negative")
	}
	if c.Signal.MinOrderVolume <= 0 || c.Signal.MaxOrderVolume < c.Signal.MinOrderVolume {
		return fmt.Errorf("signal volume bounds must satisfy 0 < min_order_volume <= max_order_volume")
	}
	if c.Signal.UpperRRThreshold <= c.Signal.LowerRRThreshold {
		return fmt.Errorf("signal.upper_rr_threshold must exceed signal.lower_rr_threshold")
	}
	if c.Signal.RelVolume <= 0 {
		return fmt.Errorf("signal.rel_volume must be positive")
	}
	if _, err := signal.ParseVariant(c.Exit.Variant); err != nil {
		return fmt.Errorf("exit.variant: %w", err)
	}
	if c.Data.Bars == "" {
		return fmt.Errorf("data.bars is required")
	}
	if c.Data.Instrument == "" {
		return fmt.Errorf("data.instrument is required")
	}

	switch c.Journal.Type {
	case "none", "":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal trades_file, equity_file and runs_file required for csv journal")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults for EUR_USD.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:       "SIM-001",
			Currency: "USD",
			Cash:     10_000,
		},
		Costs: CostConfig{
			SpreadPips:       2,
			CommissionPerLot: 7,
			SlippagePips:     1,
			SwapPerLotDay:    -1.5,
			PipValue:         0.0001,
			LotSize:          100_000,
			Leverage:         100,
		},
		Signal: SignalConfig{
			ProfitThreshold:  10,
			MinDrawdownPips:  5,
			TPMultiplier:     0.9,
			SLMultiplier:     1.1,
			LowerRRThreshold: 0.5,
			UpperRRThreshold: 2.0,
			MinOrderVolume:   0.01,
			MaxOrderVolume:   1.0,
			RelVolume:        0.02,
		},
		Exit: ExitConfig{
			Variant: signal.DefaultVariant.String(),
		},
		Data: DataConfig{
			Instrument: "EUR_USD",
			Bars:       "./bars.csv",
			Predictor:  "csv",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./fxsim.sqlite",
		},
	}
}
