// Package app 按层装配应用模块
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	apihttp "github.com/weisyn/nftmint/internal/api/http"
	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/gallery"
	"github.com/weisyn/nftmint/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// stopTimeout 停止时等待存储落盘和连接关闭的时间
const stopTimeout = 30 * time.Second

// App 装配完成的应用
type App struct {
	fxApp *fx.App

	Config     *config.Config
	Logger     log.Logger
	Bridge     *wallet.Bridge
	Controller *gallery.Controller
	Notifier   *notify.Notifier
	Journal    *badger.Journal // 未启用时为 nil
	Server     *apihttp.Server // 未启用API时为 nil
}

// New 装配应用，不启动
func New(cfg *config.Config, appOptions ...Option) (*App, error) {
	opts := newOptions(appOptions...)
	a := &App{Config: cfg}

	targets := []interface{}{&a.Logger, &a.Bridge, &a.Controller, &a.Notifier}
	if opts.enableJournal {
		targets = append(targets, &a.Journal)
	}
	if opts.enableAPI {
		targets = append(targets, &a.Server)
	}

	a.fxApp = NewBootstrap(cfg, opts).CreateFxApp(targets...)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("装配应用失败: %w", err)
	}
	return a, nil
}

// Start 执行所有启动钩子
func (a *App) Start(ctx context.Context) error {
	return a.fxApp.Start(ctx)
}

// Stop 执行所有停止钩子
func (a *App) Stop(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	return a.fxApp.Stop(stopCtx)
}

// Wait 阻塞直到收到退出信号或 ctx 结束，然后停止应用
func (a *App) Wait(ctx context.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		if a.Logger != nil {
			a.Logger.Infof("收到信号 %v，正在优雅退出", sig)
		}
	case <-ctx.Done():
	}
	return a.Stop(context.Background())
}

// Run 装配并启动应用，执行 fn 后停止
// 命令行的一次性命令使用
func Run(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, a *App) error, appOptions ...Option) error {
	a, err := New(cfg, appOptions...)
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}

	runErr := fn(ctx, a)

	if err := a.Stop(context.Background()); err != nil && runErr == nil {
		return err
	}
	return runErr
}
