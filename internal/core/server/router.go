package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter 基础 engine：panic 恢复 + CORS；origins 为空时放开所有来源
func NewRouter(l *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))

	cc := cors.DefaultConfig()
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	cc.AddAllowHeaders("Authorization")
	r.Use(cors.New(cc))
	return r
}

func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
