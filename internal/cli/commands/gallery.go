// Package commands 实现命令行子命令的业务流程
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/weisyn/nftmint/internal/cli/ui"
	"github.com/weisyn/nftmint/internal/core/gallery"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// Session 页面会话能力
type Session interface {
	Load(ctx context.Context) gallery.LoadResult
	Mint(ctx context.Context) (*types.MintReceipt, error)
}

// Connector 钱包连接检测
type Connector interface {
	CheckConnection(ctx context.Context) (types.Account, error)
}

// History 铸造记录
type History interface {
	List(ctx context.Context, limit int) ([]types.MintReceipt, error)
}

// GalleryCommands 账户、画廊、铸造和记录命令
type GalleryCommands struct {
	logger    log.Logger
	ui        ui.Components
	session   Session
	connector Connector
	history   History
}

// NewGalleryCommands 创建命令处理器，history 可以为 nil
func NewGalleryCommands(logger log.Logger, components ui.Components, session Session, connector Connector, history History) *GalleryCommands {
	return &GalleryCommands{
		logger:    logger,
		ui:        components,
		session:   session,
		connector: connector,
		history:   history,
	}
}

// ShowAccount 检测钱包并显示当前账户
func (g *GalleryCommands) ShowAccount(ctx context.Context) error {
	account, err := g.connector.CheckConnection(ctx)
	if err != nil {
		return err
	}
	if account.IsZero() {
		return g.ui.ShowWarning("No authorized account found")
	}
	return g.ui.ShowKeyValuePairs("账户", [][2]string{{"地址", account.String()}})
}

// ShowGallery 执行一次页面加载并显示画廊
func (g *GalleryCommands) ShowGallery(ctx context.Context) error {
	spinner := g.ui.ShowSpinner("Loading...")
	_ = spinner.Start()

	result := g.session.Load(ctx)
	switch {
	case errors.Is(result.ConnectErr, wallet.ErrWalletNotInstalled):
		_ = spinner.Stop()
		// 告警已经通过通知显示
		return result.ConnectErr
	case result.RefreshErr != nil:
		_ = spinner.Fail("读取画廊失败")
		return result.RefreshErr
	}
	_ = spinner.Stop()

	if result.ConnectErr != nil && g.logger != nil {
		g.logger.Warnf("查询账户失败: %v", result.ConnectErr)
	}
	if !result.Account.IsZero() {
		_ = g.ui.ShowInfo(fmt.Sprintf("账户: %s", result.Account))
	}
	return g.ui.ShowGallery(result.Gallery)
}

// Mint 检测钱包后铸造一个 token
// 成功横幅由通知订阅者显示，这里只显示回执
func (g *GalleryCommands) Mint(ctx context.Context) error {
	if _, err := g.connector.CheckConnection(ctx); errors.Is(err, wallet.ErrWalletNotInstalled) {
		return err
	}

	spinner := g.ui.ShowSpinner("Loading... 等待交易确认")
	_ = spinner.Start()

	receipt, err := g.session.Mint(ctx)
	if err != nil {
		_ = spinner.Fail("铸造失败")
		return err
	}
	_ = spinner.Stop()
	return g.ui.ShowReceipt(receipt)
}

// ShowHistory 显示最近 limit 条铸造记录，0 表示全部
func (g *GalleryCommands) ShowHistory(ctx context.Context, limit int) error {
	if g.history == nil {
		return g.ui.ShowWarning("未启用铸造记录")
	}
	receipts, err := g.history.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("读取铸造记录失败: %w", err)
	}
	return g.ui.ShowHistory(receipts)
}
