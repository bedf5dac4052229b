package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeBadRequest   = http.StatusBadRequest
	CodeUnauthorized = http.StatusUnauthorized
	CodeNotFound     = http.StatusNotFound
	CodeConflict     = http.StatusConflict
	CodeTooLarge     = http.StatusRequestEntityTooLarge
	CodeServerError  = http.StatusInternalServerError
)

// CodeMsgMap 未指定 msg 时的默认文案
var CodeMsgMap = map[int]string{
	CodeBadRequest:   "bad request",
	CodeUnauthorized: "unauthorized",
	CodeNotFound:     "not found",
	CodeConflict:     "conflict",
	CodeTooLarge:     "request body too large",
	CodeServerError:  "internal error",
}
