// 基于asaskevich/EventBus的事件总线实现
// 在原始总线之上增加启用开关和按类型的最近历史

package event

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
	eventconfig "github.com/weisyn/nftmint/internal/config/event"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/event"
)

// EventBus 是基于asaskevich/EventBus的实现
type EventBus struct {
	bus    evbus.Bus           // 底层事件总线
	config *eventconfig.Config // 配置

	historyMu    sync.RWMutex                        // 历史记录锁
	eventHistory map[event.EventType][][]interface{} // 历史事件存储
}

// New 创建事件总线实例
// 所有事件总线实例必须通过此函数创建，确保配置被正确应用
func New(config *eventconfig.Config) *EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:          evbus.New(),
		config:       config,
		eventHistory: make(map[event.EventType][][]interface{}),
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil // 如果事件系统未启用，静默成功
	}
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	eb.saveEventToHistory(eventType, args)
	eb.bus.Publish(string(eventType), args...)
}

// saveEventToHistory 保存事件到历史记录，超过上限时丢弃最旧的
func (eb *EventBus) saveEventToHistory(eventType event.EventType, args []interface{}) {
	limit := eb.config.GetHistorySize()
	if limit == 0 {
		return
	}

	eb.historyMu.Lock()
	defer eb.historyMu.Unlock()

	history := append(eb.eventHistory[eventType], append([]interface{}(nil), args...))
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	eb.eventHistory[eventType] = history
}

// GetEventHistory 获取事件历史，返回副本
func (eb *EventBus) GetEventHistory(eventType event.EventType) [][]interface{} {
	eb.historyMu.RLock()
	defer eb.historyMu.RUnlock()

	history := eb.eventHistory[eventType]
	if len(history) == 0 {
		return nil
	}
	out := make([][]interface{}, len(history))
	copy(out, history)
	return out
}

// Unsubscribe 实现取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// WaitAsync 等待所有异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// HasCallback 检查是否有回调函数
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

var _ event.EventBus = (*EventBus)(nil)
