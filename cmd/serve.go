package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/matthewelijahlogan/mirror/internal/database"
	"github.com/matthewelijahlogan/mirror/internal/fortune"
	"github.com/matthewelijahlogan/mirror/internal/llm"
	"github.com/matthewelijahlogan/mirror/internal/memory"
	"github.com/matthewelijahlogan/mirror/internal/quiz"
	"github.com/matthewelijahlogan/mirror/internal/server"
	"github.com/matthewelijahlogan/mirror/internal/service"
)

// serveCmd 启动 HTTP 服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动占卜镜 HTTP 服务",
	Long:  `启动 HTTP 服务,提供问卷、占卜、历史查询与导出接口。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 初始化数据库
		if err := database.Init(cfg.Database.Path); err != nil {
			return fmt.Errorf("failed to init database: %w", err)
		}
		defer database.Close()

		// 可选的 Redis 缓存
		var cache *memory.RedisCache
		if cfg.Redis.Enabled {
			c, err := memory.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
			if err != nil {
				logx.Warn("Redis cache unavailable, running without it: %v", err)
			} else {
				cache = c
				defer cache.Close()
			}
		}

		store := memory.NewStore(cfg.Memory.Path, cfg.Memory.KeepHistory, cache)

		// 可选的生成式占卜能力
		var gen fortune.Generator
		if cfg.LLM.Enabled {
			if cfg.LLM.APIKey == "" {
				logx.Warn("LLM enabled but api_key is empty, falling back to rule-based fortunes")
			} else {
				gen = llm.NewOpenAIClient(&llm.Config{
					Model:       cfg.LLM.Model,
					APIKey:      cfg.LLM.APIKey,
					BaseURL:     cfg.LLM.BaseURL,
					Timeout:     cfg.LLM.Timeout,
					MaxTokens:   cfg.LLM.MaxTokens,
					Temperature: cfg.LLM.Temperature,
				})
				logx.Info("Generative fortunes enabled, model %s", cfg.LLM.Model)
			}
		}

		oracle := fortune.NewEngine(store, gen)
		bank := quiz.LoadBank(cfg.Quiz.QuestionFile)
		results := service.NewResultService()

		srv := server.NewHTTPGinServer(cfg, oracle, store, bank, results)

		// 后台启动,主协程等待退出信号
		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("http server error: %w", err)
		case sig := <-quit:
			logx.Info("Received signal %s, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop http server: %w", err)
		}

		logx.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
