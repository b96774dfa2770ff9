package metadata

import "go.uber.org/fx"

// Module 返回元数据模块，提供默认 HTTP 客户端上的 Fetcher
func Module() fx.Option {
	return fx.Module("metadata",
		fx.Provide(func() Fetcher { return NewHTTPFetcher(nil) }),
	)
}
