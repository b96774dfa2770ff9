package main

import (
	"net"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/weisyn/nftmint/internal/app"
	"github.com/weisyn/nftmint/internal/config"
)

// serveCmd 网页界面
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动网页界面",
	Long: `在 HTTP_ADDR (默认 :8080) 上提供铸造页面:
  GET  /                    铸造页面
  GET  /api/account         当前账户
  GET  /api/gallery         画廊
  POST /api/gallery/refresh 重新读取画廊
  POST /api/mint            铸造
  GET  /api/status          加载状态
  GET  /api/history         铸造记录
  GET  /ws/notifications    通知推送
  GET  /metrics             Prometheus 指标

启动后执行一次页面加载（检测钱包并读取画廊）。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv(gin.EnvGinMode) == "" {
			gin.SetMode(gin.ReleaseMode)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// 服务模式保留配置的日志级别
		if os.Getenv(config.EnvLogLevel) == "" && !globalFlags.Verbose {
			cfg.GetLog().Level = "info"
		}

		a, err := app.New(cfg, appOptions(app.WithAPI())...)
		if err != nil {
			return err
		}
		if err := a.Start(cmd.Context()); err != nil {
			return err
		}
		_ = components.ShowSuccess("页面地址: http://" + displayAddr(a.Server.Addr()))
		return a.Wait(cmd.Context())
	},
}

// displayAddr 监听所有地址时显示 localhost
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
