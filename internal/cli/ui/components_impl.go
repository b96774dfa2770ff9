package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/weisyn/nftmint/pkg/types"
)

func (c *components) println(s string) error {
	_, err := fmt.Fprintln(c.out, s)
	return err
}

func (c *components) header(title string) error {
	if title == "" {
		return nil
	}
	return c.println(pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithFullWidth(false).
		Sprint(title))
}

// ShowTable 显示表格，第一行为表头
func (c *components) ShowTable(title string, data [][]string) error {
	if len(data) == 0 {
		return fmt.Errorf("表格数据为空")
	}
	if err := c.header(title); err != nil {
		return err
	}
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderRowSeparator("-").
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("渲染表格失败: %w", err)
	}
	return c.println(rendered)
}

// ShowKeyValuePairs 按给定顺序显示键值对
func (c *components) ShowKeyValuePairs(title string, pairs [][2]string) error {
	data := [][]string{{"项目", "值"}}
	for _, kv := range pairs {
		data = append(data, []string{kv[0], kv[1]})
	}
	return c.ShowTable(title, data)
}

// ShowGallery 显示画廊
func (c *components) ShowGallery(items []types.TokenMetadata) error {
	if len(items) == 0 {
		return c.ShowInfo("画廊为空")
	}
	data := [][]string{{"#", "名称", "图片"}}
	for i, item := range items {
		data = append(data, []string{strconv.Itoa(i + 1), item.Name, truncateString(item.Image, 80)})
	}
	return c.ShowTable(fmt.Sprintf("画廊 (%d)", len(items)), data)
}

// ShowReceipt 显示铸造回执
func (c *components) ShowReceipt(receipt *types.MintReceipt) error {
	if receipt == nil {
		return nil
	}
	pairs := [][2]string{
		{"交易哈希", receipt.TxHash},
		{"受益人", receipt.Beneficiary},
		{"支付金额", formatEther(receipt)},
		{"区块高度", strconv.FormatUint(receipt.BlockNumber, 10)},
	}
	if receipt.ExplorerURL != "" {
		pairs = append(pairs, [2]string{"浏览器", receipt.ExplorerURL})
	}
	pairs = append(pairs, [2]string{"时间", receipt.MintedAt.Local().Format(time.DateTime)})
	return c.ShowKeyValuePairs("铸造成功", pairs)
}

// ShowHistory 显示铸造记录
func (c *components) ShowHistory(receipts []types.MintReceipt) error {
	if len(receipts) == 0 {
		return c.ShowInfo("暂无铸造记录")
	}
	data := [][]string{{"时间", "交易哈希", "金额", "区块"}}
	for i := range receipts {
		r := &receipts[i]
		data = append(data, []string{
			r.MintedAt.Local().Format(time.DateTime),
			r.TxHash,
			formatEther(r),
			strconv.FormatUint(r.BlockNumber, 10),
		})
	}
	return c.ShowTable(fmt.Sprintf("铸造记录 (%d)", len(receipts)), data)
}

// formatEther wei 转 ether 文本
func formatEther(r *types.MintReceipt) string {
	if r.ValueWei == nil {
		return "0 ETH"
	}
	return decimal.NewFromBigInt(r.ValueWei, -18).String() + " ETH"
}

// ShowConfirmDialog 显示确认对话框，非交互模式直接确认
func (c *components) ShowConfirmDialog(title, message string) (bool, error) {
	if !c.interactive {
		return true, nil
	}
	if err := c.header(title); err != nil {
		return false, err
	}
	_ = c.ShowInfo(message)

	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText("确认继续吗？").
		WithDefaultValue(false).
		Show()
	if err != nil {
		return false, fmt.Errorf("确认对话框失败: %w", err)
	}
	return result, nil
}

// ShowSpinner 创建加载动画，非交互模式下只输出文本
func (c *components) ShowSpinner(message string) Spinner {
	return &spinnerImpl{
		c:       c,
		message: message,
	}
}

// ShowSuccess 显示成功消息
func (c *components) ShowSuccess(message string) error {
	return c.println(pterm.Success.WithPrefix(pterm.Prefix{
		Text:  "SUCCESS",
		Style: pterm.NewStyle(c.theme.SuccessColor),
	}).Sprint(message))
}

// ShowError 显示错误消息
func (c *components) ShowError(message string) error {
	return c.println(pterm.Error.WithPrefix(pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(c.theme.ErrorColor),
	}).Sprint(message))
}

// ShowWarning 显示警告消息
func (c *components) ShowWarning(message string) error {
	return c.println(pterm.Warning.WithPrefix(pterm.Prefix{
		Text:  "WARNING",
		Style: pterm.NewStyle(c.theme.WarningColor),
	}).Sprint(message))
}

// ShowInfo 显示信息消息
func (c *components) ShowInfo(message string) error {
	return c.println(pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(c.theme.InfoColor),
	}).Sprint(message))
}

// ShowNotification 显示通知
// 告警以醒目的面板显示；成功通知单行显示
func (c *components) ShowNotification(n types.Notification) error {
	switch n.Level {
	case types.NotificationAlert:
		return c.println(pterm.DefaultBox.
			WithTitle("ALERT").
			WithTitleTopCenter().
			WithBoxStyle(pterm.NewStyle(c.theme.ErrorColor)).
			Sprint(n.Message))
	default:
		return c.ShowSuccess(n.Message)
	}
}

// ShowPanel 显示面板
func (c *components) ShowPanel(title, content string) error {
	return c.println(pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		WithBoxStyle(pterm.NewStyle(c.theme.PrimaryColor)).
		Sprint(content))
}

// ShowHeader 显示标题
func (c *components) ShowHeader(text string) error {
	return c.header(text)
}

// spinnerImpl 加载动画实现
type spinnerImpl struct {
	c       *components
	message string
	spinner *pterm.SpinnerPrinter
}

func (s *spinnerImpl) Start() error {
	if !s.c.interactive {
		return s.c.ShowInfo(s.message)
	}
	var err error
	s.spinner, err = pterm.DefaultSpinner.
		WithText(s.message).
		WithStyle(pterm.NewStyle(s.c.theme.PrimaryColor)).
		WithRemoveWhenDone(true).
		Start()
	return err
}

func (s *spinnerImpl) Stop() error {
	if s.spinner == nil {
		return nil
	}
	return s.spinner.Stop()
}

func (s *spinnerImpl) Success(message string) error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.c.ShowSuccess(message)
}

func (s *spinnerImpl) Fail(message string) error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.c.ShowError(message)
}
