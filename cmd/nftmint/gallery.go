package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmint/internal/app"
	"github.com/weisyn/nftmint/internal/cli/commands"
)

var historyLimit int

// accountCmd 当前账户
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "检测钱包并显示当前账户",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGallery(cmd, func(ctx context.Context, g *commands.GalleryCommands) error {
			return g.ShowAccount(ctx)
		}, app.WithoutJournal())
	},
}

// galleryCmd 画廊
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "读取并显示已铸造 token 的元数据",
	Long: `依次读取 1..counter-1 每个 token 的 tokenURI 并获取元数据。
任一 token 失败即中止，不显示部分结果。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGallery(cmd, func(ctx context.Context, g *commands.GalleryCommands) error {
			return g.ShowGallery(ctx)
		}, app.WithoutJournal())
	},
}

// mintCmd 铸造
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "为受益人铸造一个 token 并等待确认",
	Long: `调用 mintTo(MINT_BENEFICIARY)，附带 MINT_PRICE 的支付，等待交易确认后
打印区块浏览器链接。铸造成功不会刷新画廊。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGallery(cmd, func(ctx context.Context, g *commands.GalleryCommands) error {
			return g.Mint(ctx)
		})
	},
}

// historyCmd 铸造记录
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "显示已确认的铸造记录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGallery(cmd, func(ctx context.Context, g *commands.GalleryCommands) error {
			return g.ShowHistory(ctx, historyLimit)
		}, app.WithoutWallet())
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "只显示最近 N 条 (0 表示全部)")
}
