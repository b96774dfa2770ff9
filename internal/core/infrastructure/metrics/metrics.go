// Package metrics 提供铸造与画廊操作的 Prometheus 指标
//
// 所有指标注册在独立的 Registry 上，由 HTTP 服务的 /metrics 暴露；
// 同时注册 Go 运行时和进程指标，用于观察内存占用。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nftmint"

// 操作结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Collectors 应用指标集合
// nil 接收者上的方法为空操作，便于测试中省略指标
type Collectors struct {
	Registry *prometheus.Registry

	refreshTotal   *prometheus.CounterVec
	mintTotal      *prometheus.CounterVec
	metadataTotal  *prometheus.CounterVec
	walletTotal    *prometheus.CounterVec
	loading        prometheus.Gauge
	gallerySize    prometheus.Gauge
	mintValueWei   prometheus.Counter
	refreshSeconds prometheus.Histogram
}

// New 创建并注册指标
func New() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collectors{
		Registry: reg,
		refreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gallery",
			Name:      "refresh_total",
			Help:      "Gallery refresh cycles by result",
		}, []string{"result"}),
		mintTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "submissions_total",
			Help:      "Mint submissions by result",
		}, []string{"result"}),
		metadataTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "fetches_total",
			Help:      "Token metadata fetches by result",
		}, []string{"result"}),
		walletTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "connection_checks_total",
			Help:      "Wallet connection checks by outcome",
		}, []string{"outcome"}),
		loading: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loading",
			Help:      "1 while a refresh or mint is in flight",
		}),
		gallerySize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "gallery",
			Name:      "items",
			Help:      "Number of items in the committed gallery",
		}),
		mintValueWei: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "paid_wei_total",
			Help:      "Total payment attached to confirmed mints, in wei",
		}),
		refreshSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gallery",
			Name:      "refresh_duration_seconds",
			Help:      "Gallery refresh duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}
}

// ObserveRefresh 记录一次画廊刷新
func (c *Collectors) ObserveRefresh(result string, seconds float64, items int) {
	if c == nil {
		return
	}
	c.refreshTotal.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		c.refreshSeconds.Observe(seconds)
		c.gallerySize.Set(float64(items))
	}
}

// ObserveMint 记录一次铸造，valueWei 仅在成功时累计
func (c *Collectors) ObserveMint(result string, valueWei float64) {
	if c == nil {
		return
	}
	c.mintTotal.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		c.mintValueWei.Add(valueWei)
	}
}

// ObserveMetadata 记录一次元数据获取
func (c *Collectors) ObserveMetadata(result string) {
	if c == nil {
		return
	}
	c.metadataTotal.WithLabelValues(result).Inc()
}

// ObserveWallet 记录一次钱包检测结果
func (c *Collectors) ObserveWallet(outcome string) {
	if c == nil {
		return
	}
	c.walletTotal.WithLabelValues(outcome).Inc()
}

// SetLoading 同步加载状态
func (c *Collectors) SetLoading(loading bool) {
	if c == nil {
		return
	}
	if loading {
		c.loading.Set(1)
	} else {
		c.loading.Set(0)
	}
}
