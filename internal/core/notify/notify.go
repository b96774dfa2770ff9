// Package notify 提供用户可见通知的旁路通道
//
// 通知通过事件总线发布，命令行和 HTTP 页面各自订阅后展示：
//   - Alert：阻塞式告警（例如未检测到钱包）
//   - Success：短暂显示的成功横幅（附带区块浏览器链接）
package notify

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// EventNotification 通知事件类型
const EventNotification event.EventType = "notify:notification"

// successPrefix 成功横幅文本前缀
const successPrefix = "Success, see transaction: "

// Handler 通知处理函数
type Handler func(types.Notification)

// Notifier 基于事件总线的通知发布者
type Notifier struct {
	bus    event.EventBus
	logger log.Logger
	now    func() time.Time
}

// New 创建通知发布者
func New(bus event.EventBus, logger log.Logger) *Notifier {
	return &Notifier{
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// Alert 发布告警
func (n *Notifier) Alert(message string) {
	n.publish(types.NotificationAlert, message, "")
}

// Success 发布成功通知
func (n *Notifier) Success(message, link string) {
	n.publish(types.NotificationSuccess, message, link)
}

func (n *Notifier) publish(level types.NotificationLevel, message, link string) {
	notification := types.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Link:      link,
		CreatedAt: n.now().UTC(),
	}
	if n.logger != nil {
		n.logger.With("notification_id", notification.ID, "level", string(level)).Info(message)
	}
	if n.bus != nil {
		n.bus.Publish(EventNotification, notification)
	}
}

// Subscribe 同步订阅通知
// asaskevich/EventBus 按函数指针取消订阅，同一个函数字面量产生的闭包无法区分，
// 因此每个展示端只订阅一次，自行分发
func (n *Notifier) Subscribe(handler Handler) error {
	if n.bus == nil {
		return nil
	}
	return n.bus.Subscribe(EventNotification, func(notification types.Notification) {
		handler(notification)
	})
}

// Recent 返回总线保留的最近通知，按发布顺序
func (n *Notifier) Recent() []types.Notification {
	if n.bus == nil {
		return nil
	}
	history := n.bus.GetEventHistory(EventNotification)
	out := make([]types.Notification, 0, len(history))
	for _, args := range history {
		if len(args) == 0 {
			continue
		}
		if notification, ok := args[0].(types.Notification); ok {
			out = append(out, notification)
		}
	}
	return out
}

// ExplorerTxURL 交易在区块浏览器中的地址
// 没有浏览器（本地网络）时只返回交易哈希
func ExplorerTxURL(base, txHash string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return txHash
	}
	return base + "/tx/" + txHash
}

// SuccessMessage 铸造成功的横幅文本
func SuccessMessage(link string) string {
	return successPrefix + link
}
