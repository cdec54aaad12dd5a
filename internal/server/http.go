package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matthewelijahlogan/mirror/internal/config"
	"github.com/matthewelijahlogan/mirror/internal/fortune"
	"github.com/matthewelijahlogan/mirror/internal/memory"
	"github.com/matthewelijahlogan/mirror/internal/quiz"
	"github.com/matthewelijahlogan/mirror/internal/service"
	"github.com/matthewelijahlogan/mirror/web"
)

// HTTPGinServer 基于 Gin 的 HTTP 服务器
type HTTPGinServer struct {
	config  *config.Config
	engine  *gin.Engine
	server  *http.Server
	oracle  *fortune.Engine
	store   *memory.Store
	bank    []quiz.Question
	results *service.ResultService
}

// NewHTTPGinServer 创建基于 Gin 的 HTTP 服务器
func NewHTTPGinServer(cfg *config.Config, oracle *fortune.Engine, store *memory.Store, bank []quiz.Question, results *service.ResultService) *HTTPGinServer {
	// 设置 Gin 模式
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	s := &HTTPGinServer{
		config:  cfg,
		engine:  engine,
		oracle:  oracle,
		store:   store,
		bank:    bank,
		results: results,
	}

	// 注册中间件
	s.registerMiddlewares()

	// 注册路由
	s.registerRoutes()

	return s
}

// registerMiddlewares 注册中间件
func (s *HTTPGinServer) registerMiddlewares() {
	// 恢复中间件 - 从 panic 恢复
	s.engine.Use(gin.Recovery())

	// 请求 ID 中间件
	s.engine.Use(s.requestIDMiddleware())

	// 自定义日志中间件
	s.engine.Use(s.loggingMiddleware())

	// CORS 中间件
	s.engine.Use(s.corsMiddleware())
}

// requestIDMiddleware 为每个请求分配唯一 ID
func (s *HTTPGinServer) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware 自定义日志中间件
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP request, method %s, path %s, status %d, remote_addr %s, duration %s",
			method, path, status, c.ClientIP(), duration)
	}
}

// corsMiddleware CORS 中间件
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerRoutes 注册路由
func (s *HTTPGinServer) registerRoutes() {
	// API v1 路由组
	v1 := s.engine.Group("/api/v1")
	{
		// 健康检查
		v1.GET("/health", s.handleHealth)

		// 问卷
		v1.GET("/quiz/questions", s.handleQuizQuestions)

		// 星座查询
		v1.GET("/astrology/:birthdate", s.handleAstrology)

		// 占卜
		v1.POST("/fortune", s.handleFortune)

		// 历史记录
		v1.GET("/history/:name", s.handleHistory)
		v1.GET("/history/:name/summary", s.handleHistorySummary)

		// 统计与导出
		v1.GET("/analytics", s.handleAnalytics)
		v1.GET("/export", s.handleExport)
	}

	// 前端静态资源
	s.registerFrontend()
}

// registerFrontend 注册内嵌前端
func (s *HTTPGinServer) registerFrontend() {
	fileSystem, err := web.GetFileSystem()
	if err != nil {
		logx.Warn("Failed to load embedded frontend: %v", err)
		return
	}

	s.engine.NoRoute(func(c *gin.Context) {
		// API 路径不回退到前端
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			s.error(c, http.StatusNotFound, "Not found")
			return
		}
		c.FileFromFS(c.Request.URL.Path, fileSystem)
	})
}

// listenAddr 监听地址,未配置 host 时监听所有网卡
func (s *HTTPGinServer) listenAddr() string {
	host := s.config.Server.HTTP.Host
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, s.config.Server.HTTP.Port)
}

// Start 启动 HTTP 服务器
func (s *HTTPGinServer) Start() error {
	addr := s.listenAddr()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop 停止 HTTP 服务器
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// success 返回成功响应
func (s *HTTPGinServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// error 返回错误响应
func (s *HTTPGinServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}
