package wallet

import (
	"context"
	"crypto/ecdsa"

	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/chain"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// Options 钱包模块选项
type Options struct {
	// Disabled 不注入钱包能力，会话加载时走“未安装钱包”路径
	Disabled bool
}

// ModuleInput 钱包模块依赖
type ModuleInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Options   *Options         `optional:"true"`
	Notifier  *notify.Notifier `optional:"true"`
	Logger    log.Logger       `optional:"true"`
}

// ModuleOutput 钱包模块输出
type ModuleOutput struct {
	fx.Out

	Capability Capability
	Bridge     *Bridge
}

// Module 返回钱包模块
func Module() fx.Option {
	return fx.Module("wallet",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建钱包能力和会话桥
// 钱包被禁用或节点地址无法拨号（如不支持的协议）时能力为 nil，由会话桥发出告警。
// http(s) 节点按需连接，不可达的节点在账户请求时表现为请求被拒绝。
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "wallet")
	}

	var capability Capability
	if input.Options == nil || !input.Options.Disabled {
		key, err := signerKey(input.Config)
		if err != nil {
			return ModuleOutput{}, err
		}
		injected, err := NewInjected(context.Background(), chain.ProviderURL(input.Config), key)
		if err != nil {
			if logger != nil {
				logger.Warnf("钱包节点无法拨号，按未安装钱包处理: %v", err)
			}
		} else {
			capability = injected
			input.Lifecycle.Append(fx.Hook{
				OnStop: func(context.Context) error {
					injected.Close()
					return nil
				},
			})
		}
	}

	var alerter Alerter
	if input.Notifier != nil {
		alerter = input.Notifier
	}
	return ModuleOutput{
		Capability: capability,
		Bridge:     NewBridge(capability, alerter, logger),
	}, nil
}

// signerKey 私钥可选；配置了但无法解析属于配置错误
func signerKey(cfg *config.Config) (*ecdsa.PrivateKey, error) {
	if cfg.AccountPrivateKey == "" {
		return nil, nil
	}
	return chain.PrivateKey(cfg)
}
