package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	reqTotal *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics 注册到传入的 registry（测试各自用独立 registry）
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reqTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
			[]string{"path", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			}, []string{"path", "method"},
		),
	}
	reg.MustRegister(m.reqTotal, m.latency)
	return m
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// 未匹配路由统一归为一类，避免标签爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.reqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
