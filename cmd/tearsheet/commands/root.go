package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tearsheet",
	Short: "Tearsheet - PnL 성과 분석 엔진",
	Long: `Tearsheet Unified CLI

누적 PnL 시리즈로부터 성과/리스크 요약을 계산합니다.
집계 요약과 연도별 요약, REST/WebSocket API를 제공합니다.

Usage:
  go run ./cmd/tearsheet [command]

Examples:
  go run ./cmd/tearsheet summary
  go run ./cmd/tearsheet periodic --seed 7
  go run ./cmd/tearsheet generate --days 500 --save demo
  go run ./cmd/tearsheet api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
