package types

import "time"

// NotificationLevel 通知级别
type NotificationLevel string

const (
	NotificationAlert   NotificationLevel = "alert"   // 阻塞式提示（钱包未安装）
	NotificationSuccess NotificationLevel = "success" // 成功横幅（铸造完成）
)

// Notification 用户可见通知
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	Link      string            `json:"link,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
