package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrDuplicateEmail = errors.New("email already registered")

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser 对外输出视图（不含密码哈希）
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// NormalizeEmail 唯一性判断以此为准
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// UserRepository 查询不到时返回 (nil, nil)；Create 遇唯一冲突返回 ErrDuplicateEmail
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, u *User) error
}
