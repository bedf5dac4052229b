package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mdw "user-api/internal/transport/http/middleware"
	resp "user-api/internal/transport/http/response"
	"user-api/pkg/apperr"
)

// 绑定方式
type Binder string

const (
	// BindJSON 请求体非法 JSON / 非对象时按空对象处理，由 Handler 自行校验
	BindJSON Binder = "json"
	BindNone Binder = "none"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Methods []string // 同一路径可挂多个方法，例如 PUT + PATCH
	Path    string
	Binder  Binder
	Status  int  // 成功状态码，默认 200
	Auth    bool // 要求中间件已写入 userId
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Auth {
			if _, ok := mdw.UserID(c); !ok {
				c.JSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, ""))
				return
			}
		}

		// 2) 绑定入参
		var in I
		if a.Binder == BindJSON {
			if err := bindLenient(c, &in); err != nil {
				Fail(c, err)
				return
			}
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	for _, m := range a.Methods {
		e.g.Handle(strings.ToUpper(m), a.Path, h)
	}
}

func bindLenient[I any](c *gin.Context, dst *I) error {
	if c.Request.Body == nil {
		return nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return &apperr.Error{Code: resp.CodeTooLarge, Msg: resp.CodeMsgMap[resp.CodeTooLarge]}
		}
		return apperr.Validation("cannot read request body")
	}
	if len(b) == 0 {
		return nil
	}
	if json.Unmarshal(b, dst) != nil {
		// 半解析的字段一并丢弃
		var zero I
		*dst = zero
	}
	return nil
}

// Fail 统一错误映射；非业务错误只返回通用文案并记入 c.Errors
func Fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Code < http.StatusInternalServerError {
		c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Msg))
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(resp.CodeServerError, resp.Error(resp.CodeServerError, ""))
}
