package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Opts struct {
	Driver             string // 为空时按 DSN 的 scheme 推断
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	Logger             *zap.Logger
}

// ParseURL 把 DATABASE_URL 风格的地址拆成 (driver, 驱动可识别的 dsn)
//
//	sqlite:///users.db      → sqlite, users.db
//	sqlite:////var/x.db     → sqlite, /var/x.db
//	sqlite:// 或 sqlite:///:memory: → sqlite, :memory:
//	postgres(ql)://...      → postgres, 原样
//	mysql://...             → mysql, 原样（后续 normalizeMySQLDSN）
func ParseURL(raw string) (driver, dsn string, err error) {
	in := strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(in, "://")
	if !ok {
		return "", "", fmt.Errorf("%w: cannot infer driver from %q", ErrUnsupportedDriver, maskDSN(in))
	}
	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			path = ":memory:"
		}
		return "sqlite", path, nil
	case "postgres", "postgresql":
		return "postgres", in, nil
	case "mysql", "jdbc:mysql":
		return "mysql", in, nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDriver, scheme)
}

func NewGorm(o Opts) (*gorm.DB, error) {
	driver, dsn := o.Driver, o.DSN
	if driver == "" {
		var err error
		if driver, dsn, err = ParseURL(o.DSN); err != nil {
			return nil, err
		}
	}
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open(dsn)
	case "postgres":
		dial = postgres.Open(dsn)
	case "mysql":
		dsn = normalizeMySQLDSN(dsn, o.Username, o.Password)
		if o.Logger != nil {
			o.Logger.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		}
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(lvl),
		TranslateError: true, // 唯一冲突 → gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := o.MaxOpenConns
	if driver == "sqlite" {
		maxOpen = 1 // sqlite 单写者，避免 database is locked
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	db = db.
		Session(&gorm.Session{
			PrepareStmt:            true, // 预编译缓存，提高 QPS
			SkipDefaultTransaction: true, // 单语句写入本身即原子
		})
	return db, nil
}

// maskDSN 隐藏 user:pass@ 中的密码
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at <= 0 {
		return dsn
	}
	start := strings.Index(dsn, "://")
	if start < 0 {
		start = 0
	} else {
		start += 3
	}
	if colon := strings.Index(dsn[start:at], ":"); colon >= 0 {
		return dsn[:start+colon+1] + "****" + dsn[at:]
	}
	return dsn
}

func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return in
	}

	// jdbc:mysql://... → mysql://...
	if strings.HasPrefix(in, "jdbc:mysql://") {
		in = strings.TrimPrefix(in, "jdbc:")
	}
	// 如果本身就是 go-sql-driver 的 DSN（user:pass@tcp(...)），不做改写
	if !strings.HasPrefix(in, "mysql://") {
		// 仍可在这里按需注入 user/pass，但容易误伤已有 DSN；保持原样更稳
		return in
	}

	u, err := url.Parse(in)
	if err != nil {
		return in // 解析失败则交给驱动报错
	}

	// 基础信息
	hostport := u.Host
	dbname := strings.TrimPrefix(u.Path, "/")

	// 用户名/密码：URL 中的（或 query 里的）→ 最后用 override 覆盖
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	if q.Get("user") != "" {
		user = q.Get("user")
		q.Del("user")
	}
	if q.Get("password") != "" {
		pass = q.Get("password")
		q.Del("password")
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	// Navicat/JDBC 常见参数适配
	// characterEncoding → charset（若未显式设置 charset）
	if q.Get("characterEncoding") != "" && q.Get("charset") == "" {
		q.Set("charset", q.Get("characterEncoding"))
	}
	q.Del("characterEncoding")

	// useUnicode 无需；删除避免噪音
	q.Del("useUnicode")

	// zeroDateTimeBehavior JDBC 专用；go-sql-driver 不支持，删除避免 DSN 不识别
	q.Del("zeroDateTimeBehavior")

	// useSSL → tls（go-sql-driver 的参数）
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		switch v {
		case "true", "1":
			q.Set("tls", "true") // 校验证书（需可信CA + 域名匹配）
		case "skip-verify":
			q.Set("tls", "skip-verify") // 跳过校验（开发期可用）
		case "preferred":
			q.Set("tls", "preferred") // 尝试TLS，不行则退回明文
		default: // "false" / 其它
			q.Set("tls", "false")
		}
		q.Del("useSSL")
	}

	// serverTimezone → loc
	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz) // 传入的已经 URL 编码，如 GMT%2B8、Asia%2FShanghai
		q.Del("serverTimezone")
	}

	// 推荐默认项：parseTime/charset
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	// 拼成 go-sql-driver 语法：user:pass@tcp(host:port)/db?...
	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}

	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, hostport, dbname)
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
