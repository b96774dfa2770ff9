package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/nftmint/internal/cli/ui"
	"github.com/weisyn/nftmint/internal/core/contract/nft"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// ContractCommands 合约维护命令（使用配置中的私钥签名）
type ContractCommands struct {
	logger     log.Logger
	ui         ui.Components
	token      nft.Contract
	signer     common.Address
	transactor *bind.TransactOpts
}

// NewContractCommands 创建合约命令处理器
// signer 为配置私钥对应的账户
func NewContractCommands(logger log.Logger, components ui.Components, token nft.Contract, signer common.Address, transactor *bind.TransactOpts) *ContractCommands {
	return &ContractCommands{
		logger:     logger,
		ui:         components,
		token:      token,
		signer:     signer,
		transactor: transactor,
	}
}

// ShowOwner 显示合约所有者，以及签名账户是否为所有者（只有所有者能提取铸造款）
func (c *ContractCommands) ShowOwner(ctx context.Context) error {
	owner, err := c.token.Owner(ctx)
	if err != nil {
		return fmt.Errorf("查询合约所有者失败: %w", err)
	}
	isOwner := "否"
	if owner == c.signer {
		isOwner = "是"
	}
	return c.ui.ShowKeyValuePairs("合约", [][2]string{
		{"地址", c.token.Address().Hex()},
		{"所有者", owner.Hex()},
		{"签名账户", c.signer.Hex()},
		{"可提取铸造款", isOwner},
	})
}

// ShowBalance 显示地址持有的 token 数量
func (c *ContractCommands) ShowBalance(ctx context.Context, address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("无效的地址: %s", address)
	}
	owner := common.HexToAddress(address)
	balance, err := c.token.BalanceOf(ctx, owner)
	if err != nil {
		return fmt.Errorf("查询余额失败: %w", err)
	}
	return c.ui.ShowKeyValuePairs("余额", [][2]string{
		{"地址", owner.Hex()},
		{"持有数量", balance.String()},
	})
}

// Withdraw 把合约累积的铸造款提取给 payee 并等待确认
func (c *ContractCommands) Withdraw(ctx context.Context, payee string) error {
	if !common.IsHexAddress(payee) {
		return fmt.Errorf("无效的地址: %s", payee)
	}
	to := common.HexToAddress(payee)

	ok, err := c.ui.ShowConfirmDialog("提取铸造款", fmt.Sprintf("提取到 %s", to.Hex()))
	if err != nil {
		return err
	}
	if !ok {
		return c.ui.ShowWarning("已取消")
	}

	opts := *c.transactor
	opts.Context = ctx
	tx, err := c.token.WithdrawPayments(&opts, to)
	if err != nil {
		return fmt.Errorf("提交提取交易失败: %w", err)
	}
	if c.logger != nil {
		c.logger.Infof("提取交易已提交: %s", tx.Hash().Hex())
	}

	spinner := c.ui.ShowSpinner("等待交易确认")
	_ = spinner.Start()
	receipt, err := c.token.WaitMined(ctx, tx)
	if err != nil {
		_ = spinner.Fail("提取失败")
		return err
	}
	_ = spinner.Stop()

	pairs := [][2]string{{"交易哈希", tx.Hash().Hex()}}
	if receipt != nil && receipt.BlockNumber != nil {
		pairs = append(pairs, [2]string{"区块高度", strconv.FormatUint(receipt.BlockNumber.Uint64(), 10)})
	}
	return c.ui.ShowKeyValuePairs("提取成功", pairs)
}
