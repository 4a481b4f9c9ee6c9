package ledger

import (
	"fmt"
	"io"
	"sort"
)

// Summary aggregates the closed trades of one simulation run.
type Summary struct {
	InitialCash     float64
	FinalCash       float64
	TotalReturnPct  float64
	TotalTrades     int
	Winners         int
	Losers          int
	WinRate         float64 // percent
	TotalPnL        float64
	TotalCommission float64
	TotalSwap       float64
	Trades          []Trade
	CloseReasons    map[string]int
}

func (l *Ledger) summarize() Summary {
	s := Summary{
		InitialCash:  l.initialCash,
		FinalCash:    l.acct.Cash,
		Trades:       l.GetTradeHistory(),
		CloseReasons: make(map[string]int),
	}

	for _, t := range s.Trades {
		s.TotalTrades++
		s.TotalPnL += t.NetPnL
		s.TotalCommission += t.Commission
		s.TotalSwap += t.Swap
		s.CloseReasons[t.CloseReason]++

		switch {
		case t.NetPnL > 0:
			s.Winners++
		case t.NetPnL < 0:
			s.Losers++
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = 100 * float64(s.Winners) / float64(s.TotalTrades)
	}
	if s.InitialCash != 0 {
		s.TotalReturnPct = 100 * (s.FinalCash - s.InitialCash) / s.InitialCash
	}
	return s
}

// PrintSummary writes a human-readable run report.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Simulation Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Winners:       %d\n", s.Winners)
	fmt.Fprintf(w, "Losers:        %d\n", s.Losers)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)

	if len(s.CloseReasons) > 0 {
		reasons := make([]string, 0, len(s.CloseReasons))
		for r := range s.CloseReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Close Reasons")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, r := range reasons {
			fmt.Fprintf(w, "%-14s %d\n", r+":", s.CloseReasons[r])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Cash:    %.2f\n", s.InitialCash)
	fmt.Fprintf(w, "Final Cash:    %.2f\n", s.FinalCash)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", s.TotalReturnPct)
	fmt.Fprintf(w, "Commission:    %.2f\n", s.TotalCommission)
	fmt.Fprintf(w, "Swap:          %.2f\n", s.TotalSwap)
	fmt.Fprintln(w)
}
