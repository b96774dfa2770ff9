package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/pkg/types"
)

func newTestServer(t *testing.T, recent []types.Notification) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := NewServer(nil, func() []types.Notification { return recent })
	router := gin.New()
	router.GET("/ws", s.HandleWebSocket)

	httpServer := httptest.NewServer(router)
	t.Cleanup(func() {
		s.Close()
		httpServer.Close()
	})
	return s, "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return s.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

// TestReplayAndBroadcast 新连接先收到最近通知，再收到广播
func TestReplayAndBroadcast(t *testing.T) {
	alert := types.Notification{ID: "1", Level: types.NotificationAlert, Message: "Please install a wallet!"}
	s, url := newTestServer(t, []types.Notification{alert})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	waitForClients(t, s, 1)

	var got types.Notification
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, alert.Message, got.Message)

	s.Broadcast(types.Notification{ID: "2", Level: types.NotificationSuccess, Message: "Success, see transaction: 0xabc"})
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, types.NotificationSuccess, got.Level)
}

// TestDisconnectUnregisters 客户端断开后注销
func TestDisconnectUnregisters(t *testing.T) {
	s, url := newTestServer(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	waitForClients(t, s, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, s, 0)

	assert.NotPanics(t, func() { s.Broadcast(types.Notification{ID: "x"}) })
}

// TestCloseRejectsNewClients 关闭后不再接受连接
func TestCloseRejectsNewClients(t *testing.T) {
	s, url := newTestServer(t, nil)
	s.Close()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, s.Clients())
}
