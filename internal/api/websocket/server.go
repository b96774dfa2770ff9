// Package websocket 向页面推送通知
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weisyn/nftmint/pkg/types"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	pongWait     = pingInterval * 2
	sendBuffer   = 16
)

// Server WebSocket服务器
// 每个连接一个发送队列，慢连接的队列满时丢弃通知而不阻塞发布者
type Server struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader
	recent   func() []types.Notification

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan types.Notification
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// NewServer 创建WebSocket服务器
// recent 用于新连接补发最近的通知，可以为 nil
func NewServer(logger *zap.Logger, recent func() []types.Notification) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger: logger,
		recent: recent,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 页面与接口同源部署，本地工具不做 Origin 限制
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
	}
}

// Broadcast 推送通知给所有连接
func (s *Server) Broadcast(n types.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- n:
		default:
			s.logger.Warn("WebSocket发送队列已满，丢弃通知",
				zap.String("remote_addr", c.conn.RemoteAddr().String()),
				zap.String("notification_id", n.ID))
		}
	}
}

// Clients 当前连接数
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		c.close()
	}
	s.mu.Unlock()
}

// HandleWebSocket 处理WebSocket连接（Gin Handler）
func (s *Server) HandleWebSocket(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade WebSocket connection", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan types.Notification, sendBuffer)}

	// 先入队补发的通知，再注册，保证顺序
	if s.recent != nil {
		for _, n := range s.recent() {
			select {
			case c.send <- n:
			default:
			}
		}
	}
	if !s.register(c) {
		_ = conn.Close()
		return
	}

	s.logger.Debug("WebSocket connection established",
		zap.String("remote_addr", conn.RemoteAddr().String()))

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop 只处理控制帧，连接关闭时注销
func (s *Server) readLoop(c *client) {
	defer s.unregister(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket connection closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case n, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(n); err != nil {
				s.logger.Debug("WebSocket写入失败", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close 断开所有连接并拒绝新连接
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.clients {
		delete(s.clients, c)
		c.close()
	}
}
