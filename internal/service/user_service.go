package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"user-api/internal/domain"
	"user-api/pkg/apperr"
)

type UserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
}

func NewUserService(users domain.UserRepository, hasher PasswordHasher, l *zap.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: l}
}

func (s *UserService) load(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (domain.PublicUser, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// Update 无有效字段时不写库
func (s *UserService) Update(ctx context.Context, id uint, in domain.UpdateSelfInput) (domain.PublicUser, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}

	dirty := false
	if name, ok := in.Name.Get(); ok {
		if name = strings.TrimSpace(name); name != "" {
			u.Name = name
			dirty = true
		}
	}
	if pw, ok := in.Password.Get(); ok && utf8.RuneCountInString(pw) >= MinPasswordLen {
		hash, err := hashPassword(s.hasher, pw)
		if err != nil {
			return domain.PublicUser{}, err
		}
		u.PasswordHash = hash
		dirty = true
	}
	if !dirty {
		return domain.PublicUser{}, apperr.Validation(msgNothingToUpdate)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return domain.PublicUser{}, fmt.Errorf("update user: %w", err)
	}
	return u.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	u, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}
