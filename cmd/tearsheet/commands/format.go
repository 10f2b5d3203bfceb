package commands

import (
	"fmt"

	"github.com/wonny/tearsheet/backend/internal/analytics"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintSectionHeader prints a boxed section title
func PrintSectionHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	for i, col := range columns {
		fmt.Printf("%-*s", widths[i], col)
		if i < len(columns)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintSummary renders one summary record as a key-value report
func PrintSummary(s *analytics.Summary) {
	const keyWidth = 24

	fmt.Println()
	fmt.Println("  Backtest Period")
	PrintKeyValue("Trading Days", fmt.Sprintf("%d", s.BacktestPeriod.TradingDays), keyWidth)
	PrintKeyValue("Years", fmt.Sprintf("%.2f", s.BacktestPeriod.Years), keyWidth)
	PrintKeyValue("Start Date", s.BacktestPeriod.StartDate, keyWidth)
	PrintKeyValue("End Date", s.BacktestPeriod.EndDate, keyWidth)

	fmt.Println()
	fmt.Println("  Capital")
	PrintKeyValue("Initial Capital", fmt.Sprintf("%.2f", s.Capital.InitialCapital), keyWidth)
	PrintKeyValue("Final Value", fmt.Sprintf("%.2f", s.Capital.FinalValue), keyWidth)
	PrintKeyValue("Total PnL Amount", fmt.Sprintf("%.2f", s.Capital.TotalPnLAmount), keyWidth)
	PrintKeyValue("Total Return", fmt.Sprintf("%.2f%%", s.Capital.TotalReturnPct), keyWidth)

	fmt.Println()
	fmt.Println("  Performance")
	PrintKeyValue("Annualized Return", fmt.Sprintf("%.2f%%", s.Performance.AnnualizedReturnPct), keyWidth)
	PrintKeyValue("Annualized Volatility", fmt.Sprintf("%.2f%%", s.Performance.AnnualizedVolatilityPct), keyWidth)
	PrintKeyValue("Sharpe Ratio", fmt.Sprintf("%.4f", s.Performance.SharpeRatio), keyWidth)

	fmt.Println()
	fmt.Println("  Risk")
	PrintKeyValue("Max Drawdown", fmt.Sprintf("%.2f%%", s.Risk.MaxDrawdownPct), keyWidth)
	PrintKeyValue("Win Rate", fmt.Sprintf("%.2f%%", s.Risk.WinRatePct), keyWidth)

	fmt.Println()
	fmt.Println("  Daily PnL")
	PrintKeyValue("Best Day", fmt.Sprintf("%.2f%%", s.DailyPnL.BestDayPct), keyWidth)
	PrintKeyValue("Worst Day", fmt.Sprintf("%.2f%%", s.DailyPnL.WorstDayPct), keyWidth)

	fmt.Println()
	fmt.Println("  Distribution")
	PrintKeyValue("Skewness", fmt.Sprintf("%.4f", s.Distribution.Skewness), keyWidth)
	PrintKeyValue("Kurtosis", fmt.Sprintf("%.4f", s.Distribution.Kurtosis), keyWidth)
}
