package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 对外业务码：0 成功；1~499 业务拒绝（WARN）；>=500 系统错误（ERROR）。
const (
	OK           = 0
	InvalidParam = 400
	Unauthorized = 401
	Forbidden    = 403
	NotFound     = 404
	Conflict     = 409
	// BizRejected 是没有专门映射的业务拒绝。
	BizRejected = 422
	Busy        = 429
	SystemError = 500
	Unavailable = 503
	Timeout     = 504
)

// Response 是 HTTP/WS 统一响应体。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}
