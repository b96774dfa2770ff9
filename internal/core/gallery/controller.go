// Package gallery 实现铸造与画廊控制器
//
// 页面加载时读取当前 token 计数，依次解析 1..counter-1 的 tokenURI 并获取元数据，
// 全部成功后一次性替换画廊；用户点击铸造时提交 mintTo 并等待确认。
// 两个操作互不排斥，加载标志由二者共享。
package gallery

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/nftmint/internal/core/contract/nft"
	clockimpl "github.com/weisyn/nftmint/internal/core/infrastructure/clock"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/metadata"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// Notifier 成功通知出口
type Notifier interface {
	Success(message, link string)
}

// Journal 铸造记录
type Journal interface {
	Append(ctx context.Context, receipt types.MintReceipt) error
}

// Options 铸造参数
type Options struct {
	Beneficiary common.Address // mintTo 的受益人
	PriceWei    *big.Int       // 每次铸造附带的支付金额
	ExplorerURL string         // 区块浏览器地址，空表示本地网络
}

// Params 控制器依赖
type Params struct {
	Bridge   *wallet.Bridge
	Bind     nft.BindFunc
	Fetcher  metadata.Fetcher
	Notifier Notifier
	Journal  Journal             // 可选
	Metrics  *metrics.Collectors // 可选
	Clock    clock.Clock         // 可选，默认系统时钟
	Logger   log.Logger
	Options  Options
}

// Controller 铸造与画廊控制器
type Controller struct {
	bridge   *wallet.Bridge
	bind     nft.BindFunc
	fetcher  metadata.Fetcher
	notifier Notifier
	journal  Journal
	metrics  *metrics.Collectors
	logger   log.Logger
	opts     Options
	clock    clock.Clock

	loading atomic.Bool

	mu      sync.RWMutex
	gallery []types.TokenMetadata
}

// LoadResult 页面加载的结果
type LoadResult struct {
	Account    types.Account
	ConnectErr error
	Gallery    []types.TokenMetadata
	RefreshErr error
}

// New 创建控制器
func New(p Params) *Controller {
	if p.Clock == nil {
		p.Clock = clockimpl.NewSystemClock()
	}
	return &Controller{
		bridge:   p.Bridge,
		bind:     p.Bind,
		fetcher:  p.Fetcher,
		notifier: p.Notifier,
		journal:  p.Journal,
		metrics:  p.Metrics,
		logger:   p.Logger,
		opts:     p.Options,
		clock:    p.Clock,
		gallery:  []types.TokenMetadata{},
	}
}

// Loading 是否有操作正在进行
func (c *Controller) Loading() bool {
	return c.loading.Load()
}

func (c *Controller) setLoading(v bool) {
	c.loading.Store(v)
	c.metrics.SetLoading(v)
}

// Gallery 返回当前画廊的副本
func (c *Controller) Gallery() []types.TokenMetadata {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.TokenMetadata, len(c.gallery))
	copy(out, c.gallery)
	return out
}

// Account 当前会话账户
func (c *Controller) Account() types.Account {
	return c.bridge.Account()
}

// Load 页面加载：检测钱包后刷新画廊
// 钱包不存在时不尝试刷新
func (c *Controller) Load(ctx context.Context) LoadResult {
	var result LoadResult

	result.Account, result.ConnectErr = c.bridge.CheckConnection(ctx)
	c.metrics.ObserveWallet(walletOutcome(result.Account, result.ConnectErr))

	if errors.Is(result.ConnectErr, wallet.ErrWalletNotInstalled) {
		result.Gallery = c.Gallery()
		return result
	}

	result.Gallery, result.RefreshErr = c.RefreshGallery(ctx)
	if result.RefreshErr != nil {
		result.Gallery = c.Gallery()
	}
	return result
}

func walletOutcome(account types.Account, err error) string {
	switch {
	case errors.Is(err, wallet.ErrWalletNotInstalled):
		return "absent"
	case err != nil:
		return "rejected"
	case account.IsZero():
		return "unauthorized"
	default:
		return "connected"
	}
}

// RefreshGallery 重新读取全部已铸造 token 的元数据
//
// 任一 token 失败即中止，保留之前的画廊并返回错误；
// 全部成功才一次性替换画廊。
func (c *Controller) RefreshGallery(ctx context.Context) ([]types.TokenMetadata, error) {
	capability := c.bridge.Capability()
	if capability == nil {
		c.logf("Ethereum object does not exist，跳过画廊刷新")
		c.metrics.ObserveRefresh(metrics.ResultSkipped, 0, 0)
		return nil, wallet.ErrWalletNotInstalled
	}

	c.setLoading(true)
	defer c.setLoading(false)

	start := c.clock.Now()
	items, err := c.collect(ctx, capability)
	if err != nil {
		c.errorf("刷新画廊失败: %v", err)
		c.metrics.ObserveRefresh(metrics.ResultFailure, 0, 0)
		return nil, err
	}

	c.mu.Lock()
	c.gallery = items
	c.mu.Unlock()

	c.metrics.ObserveRefresh(metrics.ResultSuccess, c.clock.Since(start).Seconds(), len(items))
	if c.logger != nil {
		c.logger.Infof("画廊已刷新: %d 个 token", len(items))
	}

	out := make([]types.TokenMetadata, len(items))
	copy(out, items)
	return out, nil
}

// collect 依次获取 1..counter-1 的元数据
func (c *Controller) collect(ctx context.Context, capability wallet.Capability) ([]types.TokenMetadata, error) {
	contract, err := c.bind(capability.Backend())
	if err != nil {
		return nil, fmt.Errorf("绑定合约失败: %w", err)
	}

	counter, err := contract.GetCurrentTokenID(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]types.TokenMetadata, 0)
	one := big.NewInt(1)
	for id := big.NewInt(1); id.Cmp(counter) < 0; id = new(big.Int).Add(id, one) {
		uri, err := contract.TokenURI(ctx, id)
		if err != nil {
			return nil, err
		}
		meta, err := c.fetcher.Fetch(ctx, uri)
		if err != nil {
			c.metrics.ObserveMetadata(metrics.ResultFailure)
			return nil, fmt.Errorf("%w: token %s: %w", ErrMetadataFetch, id, err)
		}
		c.metrics.ObserveMetadata(metrics.ResultSuccess)
		items = append(items, meta)
	}
	return items, nil
}

// Mint 为受益人铸造一个 token 并等待确认
//
// 成功后发布带区块浏览器链接的成功通知，不刷新画廊；
// 失败只记录日志并返回错误，不发通知。
func (c *Controller) Mint(ctx context.Context) (*types.MintReceipt, error) {
	capability := c.bridge.Capability()
	if capability == nil {
		c.logf("Ethereum object does not exist，无法铸造")
		c.metrics.ObserveMint(metrics.ResultSkipped, 0)
		return nil, wallet.ErrWalletNotInstalled
	}

	c.setLoading(true)
	defer c.setLoading(false)

	receipt, err := c.submit(ctx, capability)
	if err != nil {
		c.errorf("铸造失败: %v", err)
		c.metrics.ObserveMint(metrics.ResultFailure, 0)
		return nil, err
	}

	// 先清除加载标志再发通知
	c.setLoading(false)
	c.metrics.ObserveMint(metrics.ResultSuccess, weiFloat(receipt.ValueWei))
	if c.notifier != nil {
		c.notifier.Success(notify.SuccessMessage(receipt.ExplorerURL), receipt.ExplorerURL)
	}

	if c.journal != nil {
		if err := c.journal.Append(ctx, *receipt); err != nil {
			c.errorf("写入铸造记录失败: %v", err)
		}
	}
	return receipt, nil
}

func (c *Controller) submit(ctx context.Context, capability wallet.Capability) (*types.MintReceipt, error) {
	opts, err := capability.Transactor(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := c.bind(capability.Backend())
	if err != nil {
		return nil, fmt.Errorf("绑定合约失败: %w", err)
	}

	value := new(big.Int)
	if c.opts.PriceWei != nil {
		value.Set(c.opts.PriceWei)
	}
	opts.Value = value
	opts.Context = ctx

	tx, err := contract.MintTo(opts, c.opts.Beneficiary)
	if err != nil {
		return nil, err
	}
	hash := tx.Hash().Hex()
	if c.logger != nil {
		c.logger.Infof("铸造交易已提交: %s", hash)
	}

	mined, err := contract.WaitMined(ctx, tx)
	if err != nil {
		if errors.Is(err, nft.ErrReverted) {
			return nil, fmt.Errorf("%w: %w", ErrMintReverted, err)
		}
		return nil, err
	}

	receipt := &types.MintReceipt{
		TxHash:      hash,
		Beneficiary: c.opts.Beneficiary.Hex(),
		ValueWei:    value,
		ExplorerURL: notify.ExplorerTxURL(c.opts.ExplorerURL, hash),
		MintedAt:    c.clock.Now().UTC(),
	}
	if mined != nil && mined.BlockNumber != nil {
		receipt.BlockNumber = mined.BlockNumber.Uint64()
	}
	return receipt, nil
}

func weiFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Infof(format, args...)
	}
}

func (c *Controller) errorf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}
