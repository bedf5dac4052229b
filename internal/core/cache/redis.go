package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int, prefix string) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: prefix,
	}
}

func (c *Cache) Key(k string) string { return c.Prefix + k }

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	key = c.Key(key)
	// 先读缓存
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete 失效；连 redis 失败时返回错误，由调用方决定是否忽略
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.Key(k)
		c.sf.Forget(full[i])
	}
	if len(full) == 0 {
		return nil
	}
	return c.RDB.Del(ctx, full...).Err()
}
