// Package ui 提供命令行的 pterm 展示组件
package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/weisyn/nftmint/pkg/types"
)

// Components UI组件接口
type Components interface {
	// 数据展示组件
	ShowTable(title string, data [][]string) error
	ShowKeyValuePairs(title string, pairs [][2]string) error
	ShowGallery(items []types.TokenMetadata) error
	ShowReceipt(receipt *types.MintReceipt) error
	ShowHistory(receipts []types.MintReceipt) error

	// 交互组件
	ShowConfirmDialog(title, message string) (bool, error)

	// 进度反馈组件
	ShowSpinner(message string) Spinner

	// 状态显示组件
	ShowSuccess(message string) error
	ShowError(message string) error
	ShowWarning(message string) error
	ShowInfo(message string) error
	ShowNotification(n types.Notification) error

	// 面板和布局组件
	ShowPanel(title, content string) error
	ShowHeader(text string) error
}

// Spinner 加载动画接口
type Spinner interface {
	Start() error
	Stop() error
	Success(message string) error
	Fail(message string) error
}

// ThemeConfig 主题配置
type ThemeConfig struct {
	PrimaryColor   pterm.Color
	SecondaryColor pterm.Color
	SuccessColor   pterm.Color
	WarningColor   pterm.Color
	ErrorColor     pterm.Color
	InfoColor      pterm.Color
}

// Options 组件选项
type Options struct {
	Out         io.Writer // 默认 os.Stdout
	Interactive bool      // 是否显示动画和交互对话框
}

// components UI组件集合的具体实现
// 所有输出先渲染成字符串再写入 out，便于重定向
type components struct {
	out         io.Writer
	interactive bool
	theme       *ThemeConfig
}

// NewComponents 创建UI组件实例
func NewComponents(opts Options) Components {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &components{
		out:         out,
		interactive: opts.Interactive,
		theme:       getDefaultTheme(),
	}
}

// truncateString 截断字符串到指定长度
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	return str[:maxLen-3] + "..."
}

// getDefaultTheme 获取默认主题配置
func getDefaultTheme() *ThemeConfig {
	return &ThemeConfig{
		PrimaryColor:   pterm.FgBlue,
		SecondaryColor: pterm.FgCyan,
		SuccessColor:   pterm.FgGreen,
		WarningColor:   pterm.FgYellow,
		ErrorColor:     pterm.FgRed,
		InfoColor:      pterm.FgLightBlue,
	}
}
