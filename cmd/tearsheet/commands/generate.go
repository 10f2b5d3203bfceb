package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/data/repos"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/database"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "합성 PnL 시리즈 생성",
	Long: `난수 기반 누적 PnL 시리즈를 생성합니다.

기본은 stdout에 JSON 출력, --save 지정 시 원장 DB에 upsert합니다.

Example:
  go run ./cmd/tearsheet generate --days 500 --seed 7
  go run ./cmd/tearsheet generate --save demo`,
	RunE: runGenerate,
}

var (
	generateSeriesFlags seriesFlags
	generateSave        string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateSeriesFlags.register(generateCmd)
	generateCmd.Flags().StringVar(&generateSave, "save", "", "생성한 시리즈를 저장할 원장 시리즈 이름")

	// generate never reads from the ledger
	generateCmd.Flags().MarkHidden("series")
	generateCmd.Flags().MarkHidden("from")
	generateCmd.Flags().MarkHidden("to")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	genCfg, err := generateSeriesFlags.generatorConfig(cmd, cfg)
	if err != nil {
		return err
	}

	series, err := pnl.GenerateRandom(genCfg)
	if err != nil {
		return err
	}

	if generateSave == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := repos.NewSeriesRepository(db.Pool)
	if err := repo.SaveSeries(cmd.Context(), generateSave, series); err != nil {
		PrintError(fmt.Sprintf("Failed to save series: %v", err))
		return err
	}

	log.WithFields(map[string]interface{}{
		"series": generateSave,
		"points": len(series),
	}).Info("Series saved to ledger")

	PrintSuccess(fmt.Sprintf("Saved %d points as series %q", len(series), generateSave))
	return nil
}
