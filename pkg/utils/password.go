package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong bcrypt 只接受 72 字节以内的明文
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

type Hasher struct {
	Cost int // 0 则使用 bcrypt.DefaultCost
}

func NewHasher(cost int) *Hasher { return &Hasher{Cost: cost} }

func (h *Hasher) Hash(pw string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(b), nil
}

// Verify 哈希格式非法时同样返回 false
func (h *Hasher) Verify(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
