package metrics

import "go.uber.org/fx"

// Module 返回 metrics 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(New),
	)
}
