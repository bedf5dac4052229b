package service

import "user-api/internal/domain"

// MinPasswordLen 按字符数计
const MinPasswordLen = 6

const (
	msgRequired        = "name, email, and password are required"
	msgLoginRequired   = "email and password are required"
	msgPasswordShort   = "password must be at least 6 characters"
	msgPasswordLong    = "password must be at most 72 bytes"
	msgEmailTaken      = "email already registered"
	msgBadCredentials  = "invalid credentials"
	msgNothingToUpdate = "nothing to update or invalid inputs"
	msgUserNotFound    = "user not found"
)

// PasswordHasher 见 pkg/utils.Hasher
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(pw, hashed string) bool
}

// TokenIssuer 见 core/auth.JWTer
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// Session 注册/登录成功后的结果
type Session struct {
	User        domain.PublicUser
	AccessToken string
}
