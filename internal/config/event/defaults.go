package event

// 事件系统默认配置值
const (
	// defaultEnabled 默认启用事件系统
	// 通知（告警、成功横幅）全部经由事件总线分发
	defaultEnabled = true

	// defaultHistorySize 每种事件类型保留的历史条数
	// 新连接的页面可以补看最近的通知
	defaultHistorySize = 20
)
