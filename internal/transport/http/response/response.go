package response

// ErrorBody 所有失败响应：{"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 仅含提示的成功响应
type MessageBody struct {
	Message string `json:"message"`
}

// Error 失败响应（customMsg 为空时使用默认文案）
func Error(code int, customMsg string) ErrorBody {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if msg == "" {
		msg = CodeMsgMap[CodeServerError]
	}
	return ErrorBody{Error: msg}
}

func Message(msg string) MessageBody { return MessageBody{Message: msg} }
