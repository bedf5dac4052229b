package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"user-api/internal/core/auth"
	"user-api/internal/domain"
	"user-api/pkg/utils"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]domain.User
	updates int
	deletes int
	err     error // 非 nil 时所有操作返回该错误
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[uint]domain.User{}} }

func (f *fakeRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, v := range f.byID {
		if v.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, v := range f.byID {
		if v.Email == email {
			u := v
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates++
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deletes++
	delete(f.byID, u.ID)
	return nil
}

type fixture struct {
	repo  *fakeRepo
	jwt   *auth.JWTer
	auth  *AuthService
	users *UserService
}

func newFixture() *fixture {
	repo := newFakeRepo()
	hasher := utils.NewHasher(bcrypt.MinCost)
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "test", TTL: time.Hour}
	l := zap.NewNop()
	return &fixture{
		repo:  repo,
		jwt:   j,
		auth:  NewAuthService(repo, hasher, j, l),
		users: NewUserService(repo, hasher, l),
	}
}
