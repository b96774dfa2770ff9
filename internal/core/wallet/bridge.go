package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// InstallWalletMessage 未检测到钱包时的告警文本
const InstallWalletMessage = "Please install a wallet!"

// Alerter 阻塞式告警的通知出口
type Alerter interface {
	Alert(message string)
}

// Bridge 钱包会话桥
// 负责检测钱包能力、查询当前账户，账户在一次会话加载中只设置一次
type Bridge struct {
	capability Capability
	alerter    Alerter
	logger     log.Logger

	mu      sync.RWMutex
	account types.Account
}

// NewBridge 创建钱包会话桥，capability 可以为 nil
func NewBridge(capability Capability, alerter Alerter, logger log.Logger) *Bridge {
	return &Bridge{
		capability: capability,
		alerter:    alerter,
		logger:     logger,
	}
}

// Capability 返回注入的钱包能力
func (b *Bridge) Capability() Capability {
	return b.capability
}

// Account 返回当前会话账户，未连接时为空
func (b *Bridge) Account() types.Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.account
}

// CheckConnection 检测钱包并查询已授权账户
//
// 钱包不存在：告警并返回 ErrWalletNotInstalled，不发起查询；
// 查询失败：只记录日志，返回 ErrWalletRequestRejected；
// 没有授权账户：记录日志，账户保持为空，不返回错误。
func (b *Bridge) CheckConnection(ctx context.Context) (types.Account, error) {
	if b.capability == nil {
		if b.alerter != nil {
			b.alerter.Alert(InstallWalletMessage)
		}
		return "", ErrWalletNotInstalled
	}
	if b.logger != nil {
		b.logger.Debug("检测到钱包，查询已授权账户")
	}

	accounts, err := b.capability.Request(ctx, MethodAccounts)
	if err != nil {
		if b.logger != nil {
			b.logger.Errorf("查询钱包账户失败: %v", err)
		}
		return "", fmt.Errorf("%w: %w", ErrWalletRequestRejected, err)
	}

	if len(accounts) == 0 {
		if b.logger != nil {
			b.logger.Info("no authorized account found")
		}
		return "", nil
	}

	account := types.Account(accounts[0])
	b.mu.Lock()
	b.account = account
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Infof("钱包已连接: %s", account)
	}
	return account, nil
}
