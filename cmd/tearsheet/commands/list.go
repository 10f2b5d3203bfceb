package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/data/repos"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/database"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "원장 시리즈 목록 조회",
	Long: `원장 데이터베이스에 저장된 PnL 시리즈 목록을 출력합니다.

시리즈 이름과 저장된 관측치 수를 보여줍니다. DATABASE_URL이 필요합니다.

Example:
  go run ./cmd/tearsheet list`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("Database connection failed: %v", err))
		return err
	}
	defer db.Close()

	repo := repos.NewSeriesRepository(db.Pool)
	counts, err := repo.ListSeries(cmd.Context())
	if err != nil {
		PrintError(fmt.Sprintf("Listing series failed: %v", err))
		return err
	}

	PrintSectionHeader("Ledger Series")

	if len(counts) == 0 {
		PrintWarning("No series stored yet")
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	widths := []int{30, 12}
	PrintTableHeader([]string{"Series", "Points"}, widths)
	for _, name := range names {
		PrintTableRow([]string{name, strconv.Itoa(counts[name])}, widths)
	}

	PrintSuccess(fmt.Sprintf("%d series found", len(names)))
	return nil
}
