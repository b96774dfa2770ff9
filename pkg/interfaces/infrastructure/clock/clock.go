// Package clock 定义时间来源接口
package clock

import "time"

// Clock 时间来源
// 铸造回执时间戳和刷新耗时都从这里取，测试中可以替换为可控时钟
type Clock interface {
	Now() time.Time

	Since(t time.Time) time.Duration
}
