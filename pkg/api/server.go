package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"settrack/pkg/config"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(cfg *config.Config) *Server {
	router := gin.New()

	// 设置中间件
	router.Use(gin.Logger(), gin.Recovery())

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// API v1 路由组
	v1 := s.router.Group("/api/v1")
	{
		// 股票接口
		v1.GET("/stocks/fetch", handlers.FetchPrice)
		v1.GET("/stocks/insights", handlers.GetInsights)
		v1.POST("/stocks/history/seed", handlers.SeedHistory)

		// 关注接口
		v1.GET("/stocks/follow", handlers.ListFollows)
		v1.POST("/stocks/follow", handlers.CreateFollow)
		v1.DELETE("/stocks/follow", handlers.DeleteFollow)

		// 提醒接口
		v1.GET("/alerts", handlers.ListAlerts)
		v1.POST("/alerts", handlers.CreateAlert)
		v1.DELETE("/alerts", handlers.DeleteAlert)

		// 任务触发接口，供外部调度器调用
		v1.GET("/jobs/run", handlers.RunJob)

		// 邮件测试接口
		v1.POST("/email/test", handlers.TestEmail)
	}
}

// Start 启动服务器
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		log.Printf("API服务器启动在 %s\n", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v\n", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v\n", err)
	}

	log.Println("服务器已关闭")
}
