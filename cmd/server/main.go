// DiaoDu 调度优化引擎服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diaodu/diaodu/internal/config"
	"github.com/diaodu/diaodu/internal/database"
	"github.com/diaodu/diaodu/internal/handler"
	"github.com/diaodu/diaodu/internal/metrics"
	"github.com/diaodu/diaodu/internal/middleware"
	"github.com/diaodu/diaodu/internal/repository"
	"github.com/diaodu/diaodu/pkg/logger"
	"github.com/diaodu/diaodu/pkg/optimize"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	format := "json"
	if cfg.IsDevelopment() {
		format = "console"
	}
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: format,
	})

	fmt.Printf("DiaoDu 调度优化引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 数据库连接可选：连不上时退化为仅支持请求内嵌快照
	var loader optimize.SnapshotLoader
	var store optimize.ResultStore
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("数据库不可用，仅支持请求内嵌快照模式")
	} else {
		defer db.Close()
		loader = repository.NewSnapshotRepository(db)
		store = repository.NewResultRepository(db)
	}

	orchestrator, err := optimize.NewOrchestrator(cfg.Optimizer.ToOptimizerConfig(), loader, store)
	if err != nil {
		logger.Error().Err(err).Msg("优化引擎初始化失败")
		os.Exit(1)
	}

	optimizeHandler := handler.NewOptimizeHandler(orchestrator, cfg.Optimizer.RunTimeout)

	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Health(ctx); err != nil {
				status = "degraded"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"%s","service":"diaodu"}`, status)
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "DiaoDu 调度优化引擎 API v1",
			"endpoints": {
				"optimize": {
					"dispatch": "POST /api/v1/optimize/dispatch",
					"schedule": "POST /api/v1/optimize/schedule"
				}
			}
		}`))
	})

	// 派单优化 API
	mux.HandleFunc("/api/v1/optimize/dispatch", optimizeHandler.Dispatch)

	// 排班优化 API
	mux.HandleFunc("/api/v1/optimize/schedule", optimizeHandler.Schedule)

	// ========================================
	// 监控端点
	// ========================================

	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// 中间件执行顺序：requestID -> recovery -> logging -> handler
	root := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Recovery,
		middleware.Logging,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("env", cfg.App.Env).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}
