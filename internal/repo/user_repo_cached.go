package repo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"user-api/internal/core/cache"
	"user-api/internal/domain"
)

var errCacheMiss = errors.New("user not found")

// CachedUserRepo FindByID 走 redis 读穿；Update/Delete 先写库再失效
type CachedUserRepo struct {
	domain.UserRepository
	c   *cache.Cache
	ttl time.Duration
	log *zap.Logger
}

func NewCachedUserRepo(inner domain.UserRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *CachedUserRepo {
	return &CachedUserRepo{UserRepository: inner, c: c, ttl: ttl, log: l}
}

func userKey(id uint) string { return "user:" + strconv.FormatUint(uint64(id), 10) }

func (r *CachedUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	u, err := cache.GetOrLoadJSON(r.c, ctx, userKey(id), r.ttl, func(ctx context.Context) (*domain.User, error) {
		u, err := r.UserRepository.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, errCacheMiss
		}
		return u, nil
	})
	if errors.Is(err, errCacheMiss) {
		return nil, nil
	}
	return u, err
}

func (r *CachedUserRepo) Update(ctx context.Context, u *domain.User) error {
	if err := r.UserRepository.Update(ctx, u); err != nil {
		return err
	}
	return r.invalidate(ctx, u.ID)
}

func (r *CachedUserRepo) Delete(ctx context.Context, u *domain.User) error {
	if err := r.UserRepository.Delete(ctx, u); err != nil {
		return err
	}
	return r.invalidate(ctx, u.ID)
}

// 失效失败必须上抛，否则删除后仍可能读到旧资料
func (r *CachedUserRepo) invalidate(ctx context.Context, id uint) error {
	if err := r.c.Delete(ctx, userKey(id)); err != nil {
		r.log.Error("cache invalidate failed", zap.Uint("user_id", id), zap.Error(err))
		return err
	}
	return nil
}
