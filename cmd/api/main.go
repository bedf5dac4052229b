package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"user-api/internal/core/auth"
	"user-api/internal/core/cache"
	"user-api/internal/core/config"
	"user-api/internal/core/database"
	"user-api/internal/core/logger"
	"user-api/internal/core/server"
	"user-api/internal/domain"
	"user-api/internal/repo"
	"user-api/internal/service"
	"user-api/internal/transport/http/handler"
	"user-api/internal/transport/http/router"
	"user-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
		cfg.Log.File.Filename, cfg.Log.File.MaxSizeMB, cfg.Log.File.MaxBackups, cfg.Log.File.MaxAgeDays, cfg.Log.File.Compress)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	if cfg.UsingDefaultSecret() {
		log.Warn("JWT secret is the development default; set JWT_SECRET_KEY in production")
	}

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("dsn_driver", driverOf(cfg)))

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	hasher := utils.NewHasher(cfg.Password.BcryptCost)

	var users domain.UserRepository = repo.NewUserRepo(db)
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		defer c.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := c.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		users = repo.NewCachedUserRepo(users, c, time.Duration(cfg.Redis.UserTTLSec)*time.Second, log)
		log.Info("user cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	authH := handler.NewAuthHandler(service.NewAuthService(users, hasher, jwter, log))
	userH := handler.NewUserHandler(service.NewUserService(users, hasher, log), jwter)

	r := router.NewAPIEngine(log, router.Options{
		Name:         cfg.App.Name,
		CORSOrigins:  cfg.App.HTTP.CORSOrigins,
		MaxBodyBytes: cfg.App.HTTP.MaxBodyBytes,
		Modules:      []router.APIModule{authH, userH},
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("user api stopped gracefully")
}

func driverOf(cfg *config.Config) string {
	if cfg.DB.Driver != "" {
		return cfg.DB.Driver
	}
	d, _, _ := database.ParseURL(cfg.DB.DSN)
	return d
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
