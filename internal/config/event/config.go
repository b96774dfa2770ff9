package event

// EventOptions 事件系统配置选项
type EventOptions struct {
	Enabled     bool `json:"enabled"`      // 是否启用事件系统
	HistorySize int  `json:"history_size"` // 每种事件类型保留的历史条数，0 表示不保留
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置
// options 为 nil 时使用默认值
func New(options *EventOptions) *Config {
	if options == nil {
		options = DefaultOptions()
	}
	if options.HistorySize < 0 {
		options.HistorySize = 0
	}
	return &Config{options: options}
}

// DefaultOptions 返回默认事件选项
func DefaultOptions() *EventOptions {
	return &EventOptions{
		Enabled:     defaultEnabled,
		HistorySize: defaultHistorySize,
	}
}

// GetOptions 获取事件配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件系统
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetHistorySize 获取历史保留条数
func (c *Config) GetHistorySize() int {
	return c.options.HistorySize
}
