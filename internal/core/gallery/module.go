package gallery

import (
	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/contract/nft"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/nftmint/internal/core/metadata"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ModuleInput 控制器依赖
type ModuleInput struct {
	fx.In

	Config   *config.Config
	Bridge   *wallet.Bridge
	Fetcher  metadata.Fetcher
	Notifier *notify.Notifier    `optional:"true"`
	Journal  *badger.Journal     `optional:"true"`
	Metrics  *metrics.Collectors `optional:"true"`
	Clock    clock.Clock         `optional:"true"`
	Logger   log.Logger          `optional:"true"`
}

// Module 返回铸造与画廊模块
func Module() fx.Option {
	return fx.Module("gallery",
		fx.Provide(ProvideController),
	)
}

// ProvideController 按配置创建控制器
func ProvideController(input ModuleInput) *Controller {
	params := Params{
		Bridge:  input.Bridge,
		Bind:    nft.Binder(input.Config.ContractAddress),
		Fetcher: input.Fetcher,
		Metrics: input.Metrics,
		Clock:   input.Clock,
		Options: Options{
			Beneficiary: input.Config.Beneficiary,
			PriceWei:    input.Config.MintPriceWei(),
			ExplorerURL: input.Config.ExplorerURL,
		},
	}
	// 可选依赖为 nil 时不能装进接口
	if input.Notifier != nil {
		params.Notifier = input.Notifier
	}
	if input.Journal != nil {
		params.Journal = input.Journal
	}
	if input.Logger != nil {
		params.Logger = input.Logger.With("module", "gallery")
	}
	return New(params)
}
