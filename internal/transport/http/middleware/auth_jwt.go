package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	resp "user-api/internal/transport/http/response"
)

const KeyUserID = "userId"

// TokenVerifier 见 core/auth.JWTer
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// AuthJWT 校验 Bearer token，通过后把用户 ID 写入上下文
func AuthJWT(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		scheme, tok, ok := strings.Cut(strings.TrimSpace(ah), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		uid, err := v.Verify(strings.TrimSpace(tok))
		if err != nil {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(KeyUserID, uid)
		c.Next()
	}
}

func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok && uid != 0
}
