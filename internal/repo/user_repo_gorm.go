package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"user-api/internal/domain"
)

// UserModel users 表；硬删除，不带 DeletedAt
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:100;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func toModel(u *domain.User) *UserModel {
	return &UserModel{
		ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID: m.ID, Name: m.Name, Email: m.Email, PasswordHash: m.PasswordHash,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

// Migrate 表不存在则创建
func Migrate(db *gorm.DB) error { return db.AutoMigrate(&UserModel{}) }

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := toModel(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	*u = *m.toDomain()
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// Update 只写可变列（name / password_hash）
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&UserModel{ID: u.ID}).Updates(map[string]any{
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"updated_at":    now,
	}).Error
	if err != nil {
		return err
	}
	u.UpdatedAt = now
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Delete(&UserModel{}, u.ID).Error
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未做错误转换时按消息兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
