// Package nft 提供铸造合约的 Go 绑定
package nft

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted 交易已上链但执行失败
var ErrReverted = errors.New("transaction reverted")

// Backend 合约调用、发送交易以及等待回执所需的后端
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Contract 控制器和命令行使用的合约能力
type Contract interface {
	Address() common.Address
	GetCurrentTokenID(ctx context.Context) (*big.Int, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Owner(ctx context.Context) (common.Address, error)
	MintTo(opts *bind.TransactOpts, recipient common.Address) (*types.Transaction, error)
	WithdrawPayments(opts *bind.TransactOpts, payee common.Address) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// BindFunc 在给定后端上绑定合约
type BindFunc func(backend Backend) (Contract, error)

var (
	parsedOnce sync.Once
	parsedABI  abi.ABI
	parsedErr  error
)

// ParsedABI 返回解析后的合约 ABI
func ParsedABI() (abi.ABI, error) {
	parsedOnce.Do(func() {
		parsedABI, parsedErr = abi.JSON(strings.NewReader(TokenABI))
	})
	return parsedABI, parsedErr
}

// Token 铸造合约的绑定
type Token struct {
	address  common.Address
	backend  Backend
	contract *bind.BoundContract
}

// NewToken 绑定已部署的合约
func NewToken(address common.Address, backend Backend) (*Token, error) {
	if backend == nil {
		return nil, errors.New("nft: nil backend")
	}
	parsed, err := ParsedABI()
	if err != nil {
		return nil, fmt.Errorf("解析合约ABI失败: %w", err)
	}
	return &Token{
		address:  address,
		backend:  backend,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Binder 返回在任意后端上绑定 address 处合约的函数
func Binder(address common.Address) BindFunc {
	return func(backend Backend) (Contract, error) {
		return NewToken(address, backend)
	}
}

// Address 合约地址
func (t *Token) Address() common.Address {
	return t.address
}

func (t *Token) call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return out[0], nil
}

// GetCurrentTokenID 下一个待铸造的 token id，已铸造的 id 为 1..counter-1
func (t *Token) GetCurrentTokenID(ctx context.Context) (*big.Int, error) {
	out, err := t.call(ctx, "getCurrentTokenId")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

// TokenURI 返回 token 元数据地址
func (t *Token) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := t.call(ctx, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out, new(string)).(*string), nil
}

// BalanceOf 地址持有的 token 数量
func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := t.call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

// Owner 合约所有者
func (t *Token) Owner(ctx context.Context) (common.Address, error) {
	out, err := t.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out, new(common.Address)).(*common.Address), nil
}

// MintTo 为 recipient 铸造一个 token，支付金额取 opts.Value
func (t *Token) MintTo(opts *bind.TransactOpts, recipient common.Address) (*types.Transaction, error) {
	tx, err := t.contract.Transact(opts, "mintTo", recipient)
	if err != nil {
		return nil, fmt.Errorf("mintTo: %w", err)
	}
	return tx, nil
}

// WithdrawPayments 将累计的铸造款提取给 payee
func (t *Token) WithdrawPayments(opts *bind.TransactOpts, payee common.Address) (*types.Transaction, error) {
	tx, err := t.contract.Transact(opts, "withdrawPayments", payee)
	if err != nil {
		return nil, fmt.Errorf("withdrawPayments: %w", err)
	}
	return tx, nil
}

// WaitMined 等待交易上链，回执状态为失败时返回 ErrReverted
func (t *Token) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, t.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("等待交易 %s 上链失败: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, fmt.Errorf("%w: %s", ErrReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

var _ Contract = (*Token)(nil)
