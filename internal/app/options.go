package app

import "go.uber.org/fx"

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
type options struct {
	// API支持开关（serve 子命令启用）
	enableAPI bool

	// 铸造记录存储开关（默认启用）
	enableJournal bool

	// 不注入钱包能力
	disableWallet bool

	// 额外的 fx 选项，测试中用于替换依赖
	fxOptions []fx.Option
}

// WithAPI 启用API模块
func WithAPI() Option {
	return func(o *options) {
		o.enableAPI = true
	}
}

// WithoutJournal 不打开铸造记录存储
// 只读命令使用，避免与正在运行的服务争用数据目录
func WithoutJournal() Option {
	return func(o *options) {
		o.enableJournal = false
	}
}

// WithoutWallet 按未安装钱包运行
func WithoutWallet() Option {
	return func(o *options) {
		o.disableWallet = true
	}
}

// WithFxOptions 追加 fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.fxOptions = append(o.fxOptions, opts...)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		// API默认禁用，由 serve 显式开启
		enableAPI:     false,
		enableJournal: true,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
