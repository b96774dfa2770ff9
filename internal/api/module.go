package api

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/api/http"
	"github.com/weisyn/nftmint/internal/core/gallery"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// Module 返回API模块
// HTTP服务承载页面、JSON接口和通知推送（/ws/notifications）
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		fx.Invoke(registerPageLoad),
	)
}

// pageLoadInput 启动时页面加载的依赖
type pageLoadInput struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Server     *http.Server
	Controller *gallery.Controller
	Logger     log.Logger `optional:"true"`
}

// registerPageLoad 服务启动后执行一次页面加载（检测钱包并刷新画廊）
// 加载在后台进行，不阻塞启动；停止时取消
func registerPageLoad(input pageLoadInput) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				result := input.Controller.Load(ctx)
				if input.Logger == nil {
					return
				}
				switch {
				case errors.Is(result.ConnectErr, wallet.ErrWalletNotInstalled):
					input.Logger.Warn("未检测到钱包，画廊未加载")
				case result.RefreshErr != nil:
					input.Logger.Errorf("页面加载时刷新画廊失败: %v", result.RefreshErr)
				default:
					input.Logger.Infof("页面加载完成: account=%s items=%d",
						result.Account, len(result.Gallery))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
