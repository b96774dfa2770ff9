package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/weisyn/nftmint/internal/api/http/handlers"
	"github.com/weisyn/nftmint/internal/api/http/middleware"
	"github.com/weisyn/nftmint/internal/api/websocket"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// DefaultAddr 默认监听地址
const DefaultAddr = ":8080"

// Params 服务器依赖
type Params struct {
	Addr       string
	Controller handlers.Controller
	History    handlers.History    // 可选
	Notifier   *notify.Notifier    // 可选，为空时不推送通知
	Metrics    *metrics.Collectors // 可选，为空时不暴露 /metrics
	Logger     log.Logger
}

// Server HTTP服务器
// 提供铸造页面、JSON接口、通知推送和指标
type Server struct {
	addr       string
	router     *gin.Engine
	httpServer *http.Server
	hub        *websocket.Server
	logger     log.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(p Params) (*Server, error) {
	if p.Controller == nil {
		return nil, errors.New("http server requires a controller")
	}
	if p.Addr == "" {
		p.Addr = DefaultAddr
	}

	zapLogger := zap.NewNop()
	if p.Logger != nil {
		zapLogger = p.Logger.GetZapLogger()
	}

	server := &Server{
		addr:   p.Addr,
		router: gin.New(),
		logger: p.Logger,
	}

	if p.Notifier != nil {
		server.hub = websocket.NewServer(zapLogger, p.Notifier.Recent)
		// 事件总线按函数指针退订，整个服务只订阅一次，由 hub 分发给各连接
		if err := p.Notifier.Subscribe(server.hub.Broadcast); err != nil {
			return nil, fmt.Errorf("订阅通知失败: %w", err)
		}
	} else {
		server.hub = websocket.NewServer(zapLogger, nil)
	}

	server.setupRoutes(p, zapLogger)
	return server, nil
}

// setupRoutes 注册中间件和全部路由
func (s *Server) setupRoutes(p Params, zapLogger *zap.Logger) {
	s.router.Use(gin.Recovery(), middleware.RequestID())
	if p.Logger != nil {
		s.router.Use(middleware.NewLogger(p.Logger).Middleware())
	}
	if p.Metrics != nil {
		s.router.Use(middleware.NewMetrics(p.Metrics.Registry).Middleware())
	}
	s.router.Use(middleware.ErrorHandler(zapLogger))
	s.router.SetHTMLTemplate(handlers.PageTemplate)

	galleryHandlers := handlers.NewGalleryHandlers(p.Controller, p.History, p.Logger)
	s.router.GET("/", galleryHandlers.Index)
	galleryHandlers.RegisterRoutes(s.router.Group("/api"))

	s.router.GET("/ws/notifications", s.hub.HandleWebSocket)

	if p.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler 返回路由，便于测试直接驱动
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub 通知推送服务
func (s *Server) Hub() *websocket.Server {
	return s.hub
}

// Start 监听端口并在后台提供服务
// 监听失败直接返回错误，不做端口漂移
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	go func() {
		// 正常关闭时返回 http.ErrServerClosed，不视为错误
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logf("HTTP服务器已启动，监听地址: %s", listener.Addr())
	return nil
}

// Addr 实际监听地址，未启动时返回配置地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop 断开通知连接并优雅关闭
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()
	if httpServer == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(stopCtx); err != nil {
		s.logf("HTTP服务器关闭出错: %v", err)
		return err
	}
	s.logf("HTTP服务器已关闭")
	return nil
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Infof(format, args...)
	}
}
