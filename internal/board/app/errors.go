package app

import "MergeIsland/modules/kit/errx"

// Code 表示应用层错误码。
type Code = errx.Code

const (
	CodeBoardNotOnline Code = "BOARD_NOT_ONLINE"
	// CodeInternalServer 复用 kit 的统一系统码。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
	CodeTimeout        Code = errx.CodeTimeout
)

type Error = errx.Error

// NewError 创建业务类错误（不捕获栈）。
func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

// Wrap 创建系统类错误并挂载 cause。
func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

var (
	ErrBoardNotOnline = errx.NewBiz(CodeBoardNotOnline, "棋盘未就绪")
	ErrInternalServer = errx.ErrInternal
	ErrUnavailable    = errx.ErrUnavailable
	ErrTimeout        = errx.ErrTimeout
)
