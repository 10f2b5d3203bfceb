package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

// periodicCmd represents the periodic command
var periodicCmd = &cobra.Command{
	Use:   "periodic",
	Short: "연도별 성과 요약 계산",
	Long: `누적 PnL 시리즈를 연도별 버킷으로 나눠 독립 요약을 계산합니다.

각 연도는 자체 기준선에서 다시 계산됩니다 (전년도 이월 없음).

Example:
  go run ./cmd/tearsheet periodic
  go run ./cmd/tearsheet periodic --seed 7 --json
  go run ./cmd/tearsheet periodic --series live`,
	RunE: runPeriodic,
}

var (
	periodicSeriesFlags seriesFlags
	periodicJSON        bool
	periodicFull        bool
	periodicCapital     float64
	periodicRiskFree    float64
	periodicTDPY        int
	periodicConvention  string
)

func init() {
	rootCmd.AddCommand(periodicCmd)

	periodicSeriesFlags.register(periodicCmd)
	registerParamFlags(periodicCmd, &periodicCapital, &periodicRiskFree, &periodicTDPY, &periodicConvention)
	periodicCmd.Flags().BoolVar(&periodicJSON, "json", false, "JSON 출력")
	periodicCmd.Flags().BoolVar(&periodicFull, "full", false, "연도별 전체 리포트 출력 (기본: 테이블)")
}

func runPeriodic(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	series, cleanup, err := periodicSeriesFlags.resolve(cmd.Context(), cmd, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	params, err := resolveParams(cmd, cfg, periodicCapital, periodicRiskFree, periodicTDPY, periodicConvention)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	result, err := analytics.ComputePeriodic(series, params, analytics.ResampleYearly)
	if err != nil {
		PrintError(fmt.Sprintf("Periodic computation failed: %v", err))
		return err
	}

	if periodicJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	PrintSectionHeader(fmt.Sprintf("Periodic Summary (%s)", result.ResamplePeriod))

	if periodicFull {
		for _, p := range result.Periods {
			fmt.Printf("\n  ── %s ──\n", p.Period)
			PrintSummary(&p.Summary)
		}
		fmt.Println()
		PrintDoubleSeparator()
		return nil
	}

	columns := []string{"Year", "Days", "Return%", "Vol%", "Sharpe", "MaxDD%", "Win%"}
	widths := []int{6, 6, 9, 8, 9, 8, 7}

	fmt.Println()
	PrintTableHeader(columns, widths)
	for _, p := range result.Periods {
		PrintTableRow([]string{
			p.Period,
			fmt.Sprintf("%d", p.BacktestPeriod.TradingDays),
			fmt.Sprintf("%.2f", p.Capital.TotalReturnPct),
			fmt.Sprintf("%.2f", p.Performance.AnnualizedVolatilityPct),
			fmt.Sprintf("%.4f", p.Performance.SharpeRatio),
			fmt.Sprintf("%.2f", p.Risk.MaxDrawdownPct),
			fmt.Sprintf("%.2f", p.Risk.WinRatePct),
		}, widths)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d periods computed", len(result.Periods)))
	PrintDoubleSeparator()

	return nil
}
