package notify

import (
	"go.uber.org/fx"

	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ModuleInput 通知模块依赖
type ModuleInput struct {
	fx.In

	EventBus event.EventBus
	Logger   log.Logger `optional:"true"`
}

// Module 返回通知模块
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(func(input ModuleInput) *Notifier {
			var logger log.Logger
			if input.Logger != nil {
				logger = input.Logger.With("module", "notify")
			}
			return New(input.EventBus, logger)
		}),
	)
}
