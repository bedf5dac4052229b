package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"user-api/internal/core/server"
	mdw "user-api/internal/transport/http/middleware"
	resp "user-api/internal/transport/http/response"
)

type Options struct {
	Name         string
	CORSOrigins  []string
	MaxBodyBytes int64
	// Registry 为空时使用 prometheus 默认 registry
	Registry *prometheus.Registry
	Modules  []APIModule
}

func NewAPIEngine(l *zap.Logger, o Options) *gin.Engine {
	r := server.NewRouter(l, o.CORSOrigins)

	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if o.Registry != nil {
		reg, gatherer = o.Registry, o.Registry
	}
	maxBody := o.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.MaxBodyBytes(maxBody),
		mdw.NewMetrics(reg).Handler(),
		mdw.AccessLog(l),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(resp.CodeNotFound, resp.Error(resp.CodeNotFound, ""))
	})

	name := o.Name
	if name == "" {
		name = "user-api"
	}
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": name + " running"})
	})
	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	MountAllAPI(api, o.Modules...)

	return r
}
