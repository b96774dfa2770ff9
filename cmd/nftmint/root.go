package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/weisyn/nftmint/internal/app"
	"github.com/weisyn/nftmint/internal/app/version"
	"github.com/weisyn/nftmint/internal/cli/commands"
	"github.com/weisyn/nftmint/internal/cli/ui"
	"github.com/weisyn/nftmint/internal/config"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	EnvFiles       []string // .env 文件
	NoWallet       bool     // 按未安装钱包运行
	NonInteractive bool     // 禁用动画和确认对话框
	Verbose        bool     // 详细日志
}

var (
	globalFlags GlobalFlags
	components  ui.Components
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "nftmint",
	Short: "NFT 铸造与画廊",
	Long: `nftmint - 连接钱包、铸造 NFT 并浏览已铸造的画廊

配置来自环境变量（可放在 .env 文件中）:
  NETWORK               网络名，默认 rinkeby；localhost 连接本地节点
  ALCHEMY_KEY           节点服务密钥（localhost 以外必填）
  ACCOUNT_PRIVATE_KEY   签名私钥（铸造和合约维护需要）
  NFT_CONTRACT_ADDRESS  NFT 合约地址
  MINT_BENEFICIARY      铸造受益人
  MINT_PRICE            每次铸造支付的 ether 数量，默认 0.008`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		interactive := !globalFlags.NonInteractive && term.IsTerminal(int(os.Stdout.Fd()))
		components = ui.NewComponents(ui.Options{
			Out:         os.Stdout,
			Interactive: interactive,
		})
		return nil
	},
}

// Execute 执行根命令
// Ctrl+C 取消正在进行的命令
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if components != nil {
			_ = components.ShowError(err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(version.GetFullVersion() + "\n")

	rootCmd.PersistentFlags().StringSliceVar(&globalFlags.EnvFiles, "env-file", nil, ".env 文件路径 (默认: 当前目录下的 .env，若存在)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoWallet, "no-wallet", false, "按未安装钱包运行")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NonInteractive, "non-interactive", false, "禁用动画和确认对话框")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "详细日志")

	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig 加载配置并按命令行调整日志级别
// 未设置 LOG_LEVEL 时命令行默认只输出警告以上日志
func loadConfig(reqs ...config.Requirement) (*config.Config, error) {
	cfg, err := config.FromEnvironment(globalFlags.EnvFiles, reqs...)
	if err != nil {
		return nil, err
	}
	switch {
	case globalFlags.Verbose:
		cfg.GetLog().Level = "debug"
	case os.Getenv(config.EnvLogLevel) == "":
		cfg.GetLog().Level = "warn"
	}
	return cfg, nil
}

// appOptions 全局标志对应的应用选项
func appOptions(extra ...app.Option) []app.Option {
	var opts []app.Option
	if globalFlags.NoWallet {
		opts = append(opts, app.WithoutWallet())
	}
	return append(opts, extra...)
}

// runGallery 装配应用并执行一次性的画廊命令
// 通知订阅在命令执行前完成，告警和成功横幅直接打印到终端
func runGallery(cmd *cobra.Command, fn func(ctx context.Context, g *commands.GalleryCommands) error, extra ...app.Option) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
		if err := commands.PrintNotifications(a.Notifier, components); err != nil {
			return err
		}
		var history commands.History
		if a.Journal != nil {
			history = a.Journal
		}
		g := commands.NewGalleryCommands(a.Logger, components, a.Controller, a.Bridge, history)
		return fn(ctx, g)
	}, appOptions(extra...)...)
}
