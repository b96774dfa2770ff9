package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmint/internal/cli/commands"
	"github.com/weisyn/nftmint/internal/config"
	logconfig "github.com/weisyn/nftmint/internal/config/log"
	"github.com/weisyn/nftmint/internal/core/chain"
	logimpl "github.com/weisyn/nftmint/internal/core/infrastructure/log"
)

// contractCmd 合约维护命令
var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "NFT 合约维护",
	Long:  "使用 ACCOUNT_PRIVATE_KEY 连接 NFT_CONTRACT_ADDRESS 处的合约",
}

// contractOwnerCmd 合约所有者
var contractOwnerCmd = &cobra.Command{
	Use:   "owner",
	Short: "显示合约所有者",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContract(cmd, func(ctx context.Context, c *commands.ContractCommands) error {
			return c.ShowOwner(ctx)
		})
	},
}

// contractBalanceCmd 持有数量
var contractBalanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "显示地址持有的 token 数量",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContract(cmd, func(ctx context.Context, c *commands.ContractCommands) error {
			return c.ShowBalance(ctx, args[0])
		})
	},
}

// contractWithdrawCmd 提取铸造款
var contractWithdrawCmd = &cobra.Command{
	Use:   "withdraw <payee>",
	Short: "提取合约累积的铸造款",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContract(cmd, func(ctx context.Context, c *commands.ContractCommands) error {
			return c.Withdraw(ctx, args[0])
		})
	},
}

func init() {
	contractCmd.AddCommand(contractOwnerCmd)
	contractCmd.AddCommand(contractBalanceCmd)
	contractCmd.AddCommand(contractWithdrawCmd)
}

// runContract 连接网络、绑定合约后执行命令
// 合约维护必须配置私钥，缺失时立即失败
func runContract(cmd *cobra.Command, fn func(ctx context.Context, c *commands.ContractCommands) error) error {
	cfg, err := loadConfig(config.RequireSigner)
	if err != nil {
		return err
	}
	logger, err := logimpl.New(logconfig.NewFromOptions(cfg.GetLog()))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	signer, err := chain.Account(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	handle, err := chain.Contract(ctx, cfg)
	if err != nil {
		return err
	}
	defer handle.Close()

	return fn(ctx, commands.NewContractCommands(logger, components, handle.Token, signer, handle.Transactor))
}
