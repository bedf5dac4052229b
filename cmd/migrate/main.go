package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-api/internal/core/config"
	"user-api/internal/core/database"
	"user-api/internal/core/logger"
	"user-api/internal/repo"
)

// 只建表后退出，适合在部署流水线里先于服务执行
func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		Username: cfg.DB.Username,
		Password: cfg.DB.Password,
		LogLevel: cfg.DB.LogLevel,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("migrate done")
}
