package config

import (
	eventconfig "github.com/weisyn/nftmint/internal/config/event"
	logconfig "github.com/weisyn/nftmint/internal/config/log"
	"go.uber.org/fx"
)

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	Config *Config
	Log    *logconfig.LogOptions
	Event  *eventconfig.EventOptions
}

// Module 返回配置模块
// 配置在进入 fx 之前已经加载并校验，这里只负责注入
func Module(cfg *Config) fx.Option {
	return fx.Module("config",
		fx.Provide(func() ConfigOutput {
			return ConfigOutput{
				Config: cfg,
				Log:    cfg.GetLog(),
				Event:  cfg.GetEvent(),
			}
		}),
	)
}
