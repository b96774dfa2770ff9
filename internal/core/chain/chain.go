// Package chain 提供脚本和命令行使用的链连接辅助函数
//
// 与前端不同，这里的签名者来自 ACCOUNT_PRIVATE_KEY：
//   - ProviderURL：根据网络选择本地节点或 Alchemy 端点
//   - Dial：建立 ethclient 连接
//   - Account：从私钥推导账户地址
//   - Contract：带签名者的合约句柄
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/contract/nft"
)

// LocalProviderURL 本地开发节点地址
const LocalProviderURL = "http://127.0.0.1:8545"

// ErrInvalidPrivateKey 私钥无法解析
var ErrInvalidPrivateKey = errors.New("invalid account private key")

// ProviderURL 返回节点 RPC 地址
func ProviderURL(cfg *config.Config) string {
	if cfg.IsLocal() {
		return LocalProviderURL
	}
	network := cfg.Network
	if network == "homestead" {
		network = "mainnet"
	}
	return fmt.Sprintf("https://eth-%s.alchemyapi.io/v2/%s", network, cfg.AlchemyKey)
}

// Dial 连接到配置的网络
func Dial(ctx context.Context, cfg *config.Config) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, ProviderURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("连接网络 %s 失败: %w", cfg.Network, err)
	}
	return client, nil
}

// PrivateKey 解析 ACCOUNT_PRIVATE_KEY
func PrivateKey(cfg *config.Config) (*ecdsa.PrivateKey, error) {
	if err := config.RequireSigner(cfg); err != nil {
		return nil, err
	}
	key, err := crypto.HexToECDSA(cfg.AccountPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return key, nil
}

// Account 返回私钥对应的账户地址
func Account(cfg *config.Config) (common.Address, error) {
	key, err := PrivateKey(cfg)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// Transactor 基于私钥和链 ID 创建交易签名者
func Transactor(ctx context.Context, cfg *config.Config, client *ethclient.Client) (*bind.TransactOpts, error) {
	key, err := PrivateKey(cfg)
	if err != nil {
		return nil, err
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取链ID失败: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Handle 带签名者的合约句柄
type Handle struct {
	Client     *ethclient.Client
	Token      nft.Contract
	Transactor *bind.TransactOpts
}

// Close 关闭底层连接
func (h *Handle) Close() {
	if h.Client != nil {
		h.Client.Close()
	}
}

// Contract 连接网络并绑定 NFT_CONTRACT_ADDRESS 处的合约
func Contract(ctx context.Context, cfg *config.Config) (*Handle, error) {
	client, err := Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts, err := Transactor(ctx, cfg, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	token, err := nft.NewToken(cfg.ContractAddress, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &Handle{Client: client, Token: token, Transactor: opts}, nil
}
