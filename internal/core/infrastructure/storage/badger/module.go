package badger

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/nftmint/internal/config"
	log "github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ModuleInput 存储模块依赖
type ModuleInput struct {
	fx.In

	Config    *config.Config
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// Module 返回铸造记录存储模块
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(ProvideJournal),
	)
}

// ProvideJournal 打开存储并注册关闭钩子
func ProvideJournal(input ModuleInput) (*Journal, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "journal")
	}
	store, err := Open(Options{Path: input.Config.JournalPath, SyncWrites: true}, logger)
	if err != nil {
		return nil, err
	}
	journal, err := NewJournal(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = journal.Close()
			return store.Close()
		},
	})
	return journal, nil
}
