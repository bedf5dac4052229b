package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"user-api/internal/domain"
	"user-api/pkg/apperr"
	"user-api/pkg/utils"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, l *zap.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: l}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation(msgRequired)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLen {
		return nil, apperr.Validation(msgPasswordShort)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.Validation(msgLoginRequired)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	// 用户不存在与密码错误返回同一错误
	if u == nil || !s.hasher.Verify(in.Password, u.PasswordHash) {
		return nil, apperr.Unauthorized(msgBadCredentials)
	}
	return s.session(u)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u.Public(), AccessToken: tok}, nil
}

func (s *AuthService) hash(pw string) (string, error) {
	return hashPassword(s.hasher, pw)
}

func hashPassword(h PasswordHasher, pw string) (string, error) {
	hash, err := h.Hash(pw)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", apperr.Validation(msgPasswordLong)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
