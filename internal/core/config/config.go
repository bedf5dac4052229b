package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// 本地开发兜底值，生产环境必须覆盖
const (
	DefaultDatabaseURL = "sqlite:///users.db"
	DefaultJWTSecret   = "super-secret-key-change-me"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	MaxBodyBytes    int64
	CORSOrigins     []string
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

// LogFile Filename 为空时只输出到 stdout
type LogFile struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Password struct {
	BcryptCost int
}

// Redis Addr 为空即不启用缓存
type Redis struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	Prefix     string `mapstructure:"prefix"`
	UserTTLSec int    `mapstructure:"userttlsec"`
}

type DB struct {
	Driver             string // 为空时按 DSN scheme 推断
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App      App
	Log      Log
	JWT      JWT
	Password Password
	DB       DB
	Redis    Redis `mapstructure:"redis"`
}

// UsingDefaultSecret 是否仍在使用开发期密钥
func (c *Config) UsingDefaultSecret() bool { return c.JWT.Secret == DefaultJWTSecret }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "user-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.corsorigins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.filename", "")
	v.SetDefault("log.file.maxsizemb", 100)
	v.SetDefault("log.file.maxbackups", 7)
	v.SetDefault("log.file.maxagedays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", DefaultJWTSecret)
	v.SetDefault("jwt.issuer", "user-api")
	v.SetDefault("jwt.accesstokenttlmin", 15)

	v.SetDefault("password.bcryptcost", 0)

	v.SetDefault("db.driver", "")
	v.SetDefault("db.dsn", DefaultDatabaseURL)
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "user-api:")
	v.SetDefault("redis.userttlsec", 60)
}

// Load 配置文件可缺省；优先级：APP_* / DATABASE_URL / JWT_SECRET_KEY 环境变量 > 文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db.dsn", "APP_DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("jwt.secret", "APP_JWT_SECRET", "JWT_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}
