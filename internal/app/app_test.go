package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	env := map[string]string{
		config.EnvNetwork:     "localhost",
		config.EnvHTTPAddr:    "127.0.0.1:0",
		config.EnvJournalPath: t.TempDir(),
		config.EnvLogLevel:    "error",
	}
	cfg, err := config.Load(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	require.NoError(t, err)
	return cfg
}

func TestRunWithoutWallet(t *testing.T) {
	cfg := testConfig(t)

	err := Run(context.Background(), cfg, func(ctx context.Context, a *App) error {
		require.NotNil(t, a.Controller)
		require.NotNil(t, a.Journal)
		assert.Nil(t, a.Server)

		result := a.Controller.Load(ctx)
		assert.ErrorIs(t, result.ConnectErr, wallet.ErrWalletNotInstalled)
		assert.NoError(t, result.RefreshErr)
		assert.Empty(t, result.Gallery)

		recent := a.Notifier.Recent()
		require.Len(t, recent, 1)
		assert.Equal(t, types.NotificationAlert, recent[0].Level)
		assert.Equal(t, wallet.InstallWalletMessage, recent[0].Message)

		_, err := a.Controller.Mint(ctx)
		assert.ErrorIs(t, err, wallet.ErrWalletNotInstalled)
		return nil
	}, WithoutWallet())
	require.NoError(t, err)
}

func TestRunWithoutJournal(t *testing.T) {
	cfg := testConfig(t)

	err := Run(context.Background(), cfg, func(ctx context.Context, a *App) error {
		assert.Nil(t, a.Journal)
		assert.NotNil(t, a.Bridge.Capability())
		return nil
	}, WithoutJournal())
	require.NoError(t, err)
}

func TestServeLifecycle(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, WithAPI(), WithoutWallet(), WithoutJournal())
	require.NoError(t, err)
	require.NotNil(t, a.Server)

	require.NoError(t, a.Start(context.Background()))

	resp, err := http.Get("http://" + a.Server.Addr() + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// 启动时的页面加载在后台执行，未安装钱包时发出告警
	assert.Eventually(t, func() bool {
		return len(a.Notifier.Recent()) == 1
	}, defaultWait, pollInterval)

	require.NoError(t, a.Stop(context.Background()))
}

const (
	defaultWait  = 2 * time.Second
	pollInterval = 10 * time.Millisecond
)
