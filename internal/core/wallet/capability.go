// Package wallet 提供钱包能力的检测与会话账户管理
package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/weisyn/nftmint/internal/core/contract/nft"
)

// 支持的请求方法
const (
	MethodAccounts        = "eth_accounts"
	MethodRequestAccounts = "eth_requestAccounts"
)

var (
	// ErrWalletNotInstalled 未注入钱包能力
	ErrWalletNotInstalled = errors.New("wallet not installed")
	// ErrWalletRequestRejected 钱包拒绝或无法完成账户请求
	ErrWalletRequestRejected = errors.New("wallet request rejected")
	// ErrNoSigner 钱包无法签名交易
	ErrNoSigner = errors.New("wallet has no signer")
	// ErrUnsupportedMethod 不支持的请求方法
	ErrUnsupportedMethod = errors.New("unsupported wallet method")
)

// Capability 注入的钱包能力
// 不存在时以 nil 表示，调用方负责检测
type Capability interface {
	// Request 发起钱包请求，返回地址列表
	Request(ctx context.Context, method string) ([]string, error)
	// Backend 合约绑定使用的后端
	Backend() nft.Backend
	// Transactor 交易签名者
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
}

// Injected 基于节点连接和可选私钥的钱包能力
//
// 有私钥时账户即私钥地址，并可签名交易；
// 没有私钥时账户查询转发给节点，交易签名返回 ErrNoSigner。
type Injected struct {
	rpc    *rpc.Client
	client *ethclient.Client
	key    *ecdsa.PrivateKey
}

// NewInjected 拨号节点并创建钱包能力
// http(s) 地址不会立即建立连接，节点是否可达要到第一次请求才知道
func NewInjected(ctx context.Context, url string, key *ecdsa.PrivateKey) (*Injected, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("连接钱包节点失败: %w", err)
	}
	return &Injected{
		rpc:    rpcClient,
		client: ethclient.NewClient(rpcClient),
		key:    key,
	}, nil
}

// Request 实现 Capability
func (w *Injected) Request(ctx context.Context, method string) ([]string, error) {
	switch method {
	case MethodAccounts, MethodRequestAccounts:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if w.key != nil {
		return []string{crypto.PubkeyToAddress(w.key.PublicKey).Hex()}, nil
	}

	var accounts []string
	if err := w.rpc.CallContext(ctx, &accounts, MethodAccounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Backend 实现 Capability
func (w *Injected) Backend() nft.Backend {
	return w.client
}

// Transactor 实现 Capability
func (w *Injected) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if w.key == nil {
		return nil, ErrNoSigner
	}
	chainID, err := w.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取链ID失败: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Close 关闭节点连接
func (w *Injected) Close() {
	w.client.Close()
}

var _ Capability = (*Injected)(nil)
