package http

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/gallery"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ModuleInput HTTP模块依赖
type ModuleInput struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Config     *config.Config
	Controller *gallery.Controller
	Journal    *badger.Journal     `optional:"true"`
	Notifier   *notify.Notifier    `optional:"true"`
	Metrics    *metrics.Collectors `optional:"true"`
	Logger     log.Logger          `optional:"true"`
}

// Module 返回HTTP模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建服务器并注册启动、停止钩子
func ProvideServer(input ModuleInput) (*Server, error) {
	params := Params{
		Addr:       input.Config.HTTPAddr,
		Controller: input.Controller,
		Notifier:   input.Notifier,
		Metrics:    input.Metrics,
		Logger:     input.Logger,
	}
	// 避免把 nil 指针装进接口
	if input.Journal != nil {
		params.History = input.Journal
	}
	if input.Logger != nil {
		params.Logger = input.Logger.With("module", "http")
	}

	server, err := NewServer(params)
	if err != nil {
		return nil, err
	}
	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server, nil
}
