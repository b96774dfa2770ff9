package app

import (
	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/api"
	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/gallery"
	"github.com/weisyn/nftmint/internal/core/infrastructure/clock"
	"github.com/weisyn/nftmint/internal/core/infrastructure/event"
	"github.com/weisyn/nftmint/internal/core/infrastructure/log"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/nftmint/internal/core/metadata"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/internal/core/wallet"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 通信与数据层
	LayerCommunication = "communication"
	// 业务逻辑层
	LayerBusiness = "business"
	// 应用层
	LayerApplication = "application"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	cfg  *config.Config
	opts *options
}

// NewBootstrap 创建引导程序
func NewBootstrap(cfg *config.Config, opts *options) *Bootstrap {
	return &Bootstrap{
		cfg:  cfg,
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		config.Module(b.cfg), // 1. 配置(启动前已校验)
		log.Module(),         // 2. 日志(依赖配置)
		event.Module(),       // 3. 事件总线(依赖配置和日志)
		metrics.Module(),     // 4. 指标
		clock.Module(),       // 5. 时钟
	}
}

// SetupCommunicationLayer 设置通信与数据层模块
func (b *Bootstrap) SetupCommunicationLayer() []fx.Option {
	modules := []fx.Option{
		notify.Module(),   // 通知(依赖事件总线)
		metadata.Module(), // 元数据获取
	}
	if b.opts.enableJournal {
		modules = append(modules, badger.Module()) // 铸造记录(依赖配置)
	}
	return modules
}

// SetupBusinessLayer 设置业务逻辑层模块
// 加载顺序：钱包会话桥 -> 铸造与画廊控制器
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		fx.Supply(&wallet.Options{Disabled: b.opts.disableWallet}),
		wallet.Module(),
		gallery.Module(),
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	var modules []fx.Option
	if b.opts.enableAPI {
		modules = append(modules, api.Module())
	}
	return modules
}

// SetupModules 按依赖顺序设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupCommunicationLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建 fx 应用，targets 为需要从容器中取出的对象指针
func (b *Bootstrap) CreateFxApp(targets ...interface{}) *fx.App {
	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	}
	appOptions = append(appOptions, b.opts.fxOptions...)
	if len(targets) > 0 {
		appOptions = append(appOptions, fx.Populate(targets...))
	}
	return fx.New(appOptions...)
}
