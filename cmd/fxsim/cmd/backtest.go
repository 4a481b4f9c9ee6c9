package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harveybc/fxsim/config"
	"github.com/harveybc/fxsim/internal/id"
	"github.com/harveybc/fxsim/internal/logging"
	"github.com/harveybc/fxsim/journal"
	"github.com/harveybc/fxsim/ledger"
	"github.com/harveybc/fxsim/market"
	"github.com/harveybc/fxsim/signal"
	"github.com/harveybc/fxsim/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a bar dataset through the simulated ledger",
	Long: `Backtest replays an ordered OHLC bar CSV through the ledger, driving a
strategy once per bar and evaluating stop/take levels on each bar's range.

Supported strategies:
  - prediction: entries from daily predictions, exits from the early-close policy
  - alternate:  alternates buy/sell whenever flat (wiring test)
  - noop:       does nothing (baseline)

Example:
  fxsim backtest -c run.yaml --strategy prediction --variant E`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btBarsPath   string
	btDailyPath  string
	btHourlyPath string
	btStrategy   string
	btVariant    string
	btCash       float64
	btVolume     float64
	btDBPath     string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON run config")
	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close); overrides config")
	backtestCmd.Flags().StringVar(&btDailyPath, "daily", "", "path to daily prediction CSV; overrides config")
	backtestCmd.Flags().StringVar(&btHourlyPath, "hourly", "", "path to hourly prediction CSV; overrides config")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "prediction", "strategy name (prediction, alternate, noop)")
	backtestCmd.Flags().StringVar(&btVariant, "variant", "", "early-close policy variant A-G; overrides config")
	backtestCmd.Flags().Float64Var(&btCash, "cash", 0, "starting cash; overrides config")
	backtestCmd.Flags().Float64VarP(&btVolume, "volume", "u", 0.1, "order volume in lots (alternate strategy)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "path to SQLite journal DB; overrides config")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logging.New(verbose)
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bars, err := market.LoadBars(cfg.Data.Bars, log)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info("bars loaded",
		zap.String("path", cfg.Data.Bars),
		zap.Int("bars", len(bars)))

	variant, err := signal.ParseVariant(cfg.Exit.Variant)
	if err != nil {
		return err
	}

	l := ledger.New(cfg.Costs.ToModel(), cfg.Account.Cash, bars)
	l.SetLogger(log)

	runID := id.New()
	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		l.SetJournal(j, runID)
	}

	strat, err := strategyByName(btStrategy, cfg, variant, log)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	fmt.Printf("Running backtest with strategy: %s\n", strat.Name())
	fmt.Printf("  Run ID: %s\n", runID)
	fmt.Printf("  Bars: %s\n", cfg.Data.Bars)
	fmt.Printf("  Exit Variant: %s\n\n", variant)

	summary, err := strategy.Run(l, strat)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	ledger.PrintSummary(os.Stdout, summary)

	if j != nil {
		err := j.RecordRun(journal.RunRecord{
			RunID:           runID,
			Created:         time.Now().UTC(),
			Strategy:        strat.Name(),
			Instrument:      cfg.Data.Instrument,
			Dataset:         cfg.Data.Bars,
			ExitVariant:     variant.String(),
			InitialCash:     summary.InitialCash,
			FinalCash:       summary.FinalCash,
			TotalReturnPct:  summary.TotalReturnPct,
			Trades:          summary.TotalTrades,
			Winners:         summary.Winners,
			Losers:          summary.Losers,
			WinRate:         summary.WinRate,
			TotalPnL:        summary.TotalPnL,
			TotalCommission: summary.TotalCommission,
			TotalSwap:       summary.TotalSwap,
		})
		if err != nil {
			log.Warn("journal run", zap.Error(err))
		}
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if btConfigPath != "" {
		c, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	// Flags override the file.
	if btBarsPath != "" {
		cfg.Data.Bars = btBarsPath
	}
	if btDailyPath != "" {
		cfg.Data.DailyPredictions = btDailyPath
	}
	if btHourlyPath != "" {
		cfg.Data.HourlyPredictions = btHourlyPath
	}
	if btVariant != "" {
		cfg.Exit.Variant = btVariant
	}
	if btCash > 0 {
		cfg.Account.Cash = btCash
	}
	if btDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = btDBPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile, jc.RunsFile)
	default:
		return nil, nil
	}
}

func strategyByName(name string, cfg *config.Config, variant signal.Variant, log *zap.Logger) (strategy.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return strategy.Noop{}, nil

	case "alternate":
		return &strategy.Alternate{
			Instrument: cfg.Data.Instrument,
			Volume:     btVolume,
		}, nil

	case "prediction":
		pred, err := market.NewPredictor(cfg.Data.Predictor,
			cfg.Data.DailyPredictions, cfg.Data.HourlyPredictions, log)
		if err != nil {
			return nil, err
		}
		params := cfg.Signal.ToParams(cfg.Costs)
		return strategy.NewPrediction(cfg.Data.Instrument, pred, params, variant, log), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: prediction, alternate, noop)", name)
	}
}
