package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "집계 성과 요약 계산",
	Long: `누적 PnL 시리즈의 집계 성과 요약을 계산합니다.

기본은 합성 시리즈 생성, --series 지정 시 원장 DB에서 로드합니다.

Example:
  go run ./cmd/tearsheet summary
  go run ./cmd/tearsheet summary --days 500 --seed 7 --json
  go run ./cmd/tearsheet summary --series live --from 2020-01-01`,
	RunE: runSummary,
}

var (
	summarySeriesFlags seriesFlags
	summaryJSON        bool
	summaryCapital     float64
	summaryRiskFree    float64
	summaryTDPY        int
	summaryConvention  string
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summarySeriesFlags.register(summaryCmd)
	registerParamFlags(summaryCmd, &summaryCapital, &summaryRiskFree, &summaryTDPY, &summaryConvention)
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "JSON 출력")
}

// registerParamFlags registers the computation parameter flags shared by
// summary and periodic
func registerParamFlags(cmd *cobra.Command, capital *float64, riskFree *float64, tdpy *int, convention *string) {
	cmd.Flags().Float64Var(capital, "capital", 0, "초기 자본 (default: INITIAL_CAPITAL)")
	cmd.Flags().Float64Var(riskFree, "rf", 0, "연간 무위험 수익률 (default: RISK_FREE_RATE)")
	cmd.Flags().IntVar(tdpy, "trading-days", 0, "연간 거래일 수 (default: TRADING_DAYS_PER_YEAR)")
	cmd.Flags().StringVar(convention, "convention", "", "수익률 방식 additive|compounding (default: additive)")
}

// resolveParams merges parameter flag overrides onto the configured
// defaults. Explicit non-positive values error here instead of being
// silently swallowed by the engine defaults.
func resolveParams(cmd *cobra.Command, cfg *config.Config, capital float64, riskFree float64, tdpy int, convention string) (analytics.Params, error) {
	params := analytics.Params{
		InitialCapital:     cfg.Analytics.InitialCapital,
		RiskFreeRate:       cfg.Analytics.RiskFreeRate,
		TradingDaysPerYear: cfg.Analytics.TradingDaysPerYear,
		Convention:         pnl.Additive,
	}

	if cmd.Flags().Changed("capital") {
		if capital <= 0 {
			return analytics.Params{}, fmt.Errorf("--capital must be positive, got %v", capital)
		}
		params.InitialCapital = capital
	}
	if cmd.Flags().Changed("rf") {
		params.RiskFreeRate = riskFree
	}
	if cmd.Flags().Changed("trading-days") {
		if tdpy <= 0 {
			return analytics.Params{}, fmt.Errorf("--trading-days must be positive, got %d", tdpy)
		}
		params.TradingDaysPerYear = tdpy
	}
	if convention != "" {
		params.Convention = pnl.ReturnConvention(convention)
	}

	return params, nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	series, cleanup, err := summarySeriesFlags.resolve(cmd.Context(), cmd, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	params, err := resolveParams(cmd, cfg, summaryCapital, summaryRiskFree, summaryTDPY, summaryConvention)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	summary, err := analytics.Compute(series, params)
	if err != nil {
		PrintError(fmt.Sprintf("Summary computation failed: %v", err))
		return err
	}

	if summaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	PrintSectionHeader("Performance Summary")
	PrintSummary(summary)
	fmt.Println()
	PrintDoubleSeparator()

	return nil
}
