package handler

import (
	"context"
	"errors"

	"MergeIsland/internal/board/actor"
	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/transport"
	"MergeIsland/modules/kit/errx"
	"MergeIsland/modules/kit/logx"

	"go.uber.org/zap"
)

const busyMsg = "系统繁忙，请稍后重试"

func mapBizCodeToClientCode(code errx.Code) int {
	switch code {
	case entity.CodeCellOccupied:
		return transport.Conflict
	case entity.CodeReentrantCall:
		return transport.Busy
	case entity.CodeItemNotFound, entity.CodeSnapshotNotFound:
		return transport.NotFound
	case entity.CodeCellOutOfRange, entity.CodeNilTarget, entity.CodeInvalidDefinition,
		entity.CodeItemNotOnBoard, errx.CodeReqParamError:
		return transport.InvalidParam
	case app.CodeBoardNotOnline:
		return transport.Unavailable
	default:
		return transport.BizRejected
	}
}

func mapSysCodeToClientCode(code errx.Code) int {
	switch code {
	case errx.CodeReqParamError:
		return transport.InvalidParam
	case errx.CodeUnavailable:
		return transport.Unavailable
	case errx.CodeTimeout:
		return transport.Timeout
	default:
		return transport.SystemError
	}
}

// MapError 返回对外业务码和提示语；业务拒绝透出原始提示，系统错误统一为繁忙。
func MapError(err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	var re *actor.RuntimeError
	if errors.As(err, &re) {
		return actor.CodeFromError(err), busyMsg
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return transport.SystemError, busyMsg
	}
	if e.IsBiz() {
		return mapBizCodeToClientCode(e.Code()), e.Msg()
	}
	code := mapSysCodeToClientCode(e.Code())
	if code == transport.InvalidParam {
		return code, e.Msg()
	}
	return code, busyMsg
}

// HandleError 映射错误码并打一次日志：业务拒绝走 biz，其余走 sys 带栈。
func (b *Board) HandleError(ctx context.Context, action string, err error, fields ...zap.Field) (int, string) {
	code, msg := MapError(err)
	if code == transport.OK {
		return code, msg
	}

	var e *errx.Error
	if errors.As(err, &e) {
		reason := e.Reason()
		if reason == "" {
			reason = string(e.Code())
		}
		transport.SetErrorReason(ctx, reason)
		if e.IsBiz() {
			logx.ReportBiz(ctx, b.Log, logx.NewBizLog(action, reason, e.Msg()), fields...)
			return code, msg
		}
	}
	logx.ReportSysError(ctx, b.Log, logx.NewSysLog(action, err), fields...)
	return code, msg
}
