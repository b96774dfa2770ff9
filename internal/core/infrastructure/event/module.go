// Package event 提供事件管理功能
package event

import (
	"go.uber.org/fx"

	eventconfig "github.com/weisyn/nftmint/internal/config/event"
	eventInterface "github.com/weisyn/nftmint/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Options *eventconfig.EventOptions `optional:"true"` // 事件选项（缺省使用默认值）
	Logger  log.Logger                `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(
			func(input ModuleInput) ModuleOutput {
				config := eventconfig.New(input.Options)
				if input.Logger != nil {
					input.Logger.Debugf("事件总线已创建: enabled=%v history=%d",
						config.IsEnabled(), config.GetHistorySize())
				}
				return ModuleOutput{EventBus: New(config)}
			},
		),
	)
}
