package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/api"
	"github.com/wonny/tearsheet/backend/internal/api/handlers"
	"github.com/wonny/tearsheet/backend/internal/data/repos"
	"github.com/wonny/tearsheet/backend/internal/scheduler"
	"github.com/wonny/tearsheet/backend/internal/scheduler/jobs"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/database"
	"github.com/wonny/tearsheet/backend/pkg/logger"
	"github.com/wonny/tearsheet/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST/WebSocket API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 일일 리포트 스케줄러 시작
- 원장 DB가 설정되면 시리즈 소스로 사용

Endpoints:
  GET  /health                 - Health check
  POST /api/summary            - 집계 요약 계산
  POST /api/summary/periodic   - 연도별 요약 계산
  GET  /api/series/random      - 합성 시리즈 생성
  GET  /api/report             - 캐시된 일일 리포트 조회
  GET  /api/report/periodic    - 캐시된 연도별 리포트 조회
  GET  /ws/summary             - 롤링 요약 실시간 피드

Example:
  go run ./cmd/tearsheet api
  go run ./cmd/tearsheet api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort       string
	apiSeriesName string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
	apiCmd.Flags().StringVar(&apiSeriesName, "report-series", "synthetic", "일일 리포트 대상 시리즈 이름")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tearsheet API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Optional ledger database: only when configured
	var reportSource jobs.SeriesSource
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		reportSource = repos.NewSeriesRepository(db.Pool)
		log.Info("Connected to ledger database")
	}

	// 4. Redis (no-op cache when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "tearsheet")

	// 5. Create handlers and router
	summaryHandler := handlers.NewSummaryHandler(cfg, log)
	feedHandler := handlers.NewFeedHandler(cfg, log)
	reportHandler := handlers.NewReportHandler(cache, cfg, log, apiSeriesName, reportSource == nil)
	router := api.NewRouter(summaryHandler, feedHandler, reportHandler, log)

	// 6. Create server
	server := api.New(cfg, log, router)

	// 7. Start the daily report scheduler
	sched := scheduler.New(log)
	reportJob := jobs.NewReportJob(reportSource, cache, cfg, log, apiSeriesName)
	if err := sched.AddJob(reportJob); err != nil {
		return fmt.Errorf("schedule report job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// 8. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/summary")
	fmt.Println("  POST /api/summary/periodic")
	fmt.Println("  GET  /api/series/random")
	fmt.Println("  GET  /api/report")
	fmt.Println("  GET  /api/report/periodic")
	fmt.Println("  GET  /ws/summary")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
