package actor

import (
	"context"
	"errors"
	"time"

	"MergeIsland/internal/board/actors"
	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/internal/shared/transport"
	"MergeIsland/modules/kit/errx"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

// RuntimeError 是 actor 通道本身的失败（超时、未初始化、类型不符）；棋盘业务错误原样返回。
type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 是棋盘意图的调用入口，transport 只依赖它。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	// manager 只做路由，每个棋盘一个 actor，同一棋盘的意图串行执行。
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

// Shutdown 停止 manager 及全部棋盘 actor，棋盘 actor 停止前会落盘。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) GetBoard(ctx context.Context, boardID string) (messages.BoardState, error) {
	res, err := ask[*messages.BHGetBoard](r, ctx, messages.HBGetBoard{BoardBaseMessage: base(boardID)})
	if err != nil {
		return messages.BoardState{}, err
	}
	return res.Board, nil
}

func (r *Runtime) ItemAt(ctx context.Context, boardID string, at messages.CellRef) (*messages.ItemState, error) {
	res, err := ask[*messages.BHItemAt](r, ctx, messages.HBItemAt{BoardBaseMessage: base(boardID), At: at})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}

// Drop to 为 nil 表示拖出棋盘。
func (r *Runtime) Drop(ctx context.Context, boardID string, from messages.CellRef, to *messages.CellRef) (*messages.BHDrop, error) {
	return ask[*messages.BHDrop](r, ctx, messages.HBDrop{BoardBaseMessage: base(boardID), From: from, To: to})
}

func (r *Runtime) Produce(ctx context.Context, boardID string, at messages.CellRef) (*messages.BHProduce, error) {
	return ask[*messages.BHProduce](r, ctx, messages.HBProduce{BoardBaseMessage: base(boardID), At: at})
}

func (r *Runtime) CreateItem(ctx context.Context, boardID, itemID string, at messages.CellRef) (*messages.BHCreateItem, error) {
	return ask[*messages.BHCreateItem](r, ctx, messages.HBCreateItem{BoardBaseMessage: base(boardID), ItemID: itemID, At: at})
}

func base(boardID string) messages.BoardBaseMessage {
	return messages.BoardBaseMessage{Board: boardID}
}

func ask[T any](r *Runtime, ctx context.Context, msg messages.BoardMessage) (T, error) {
	var zero T
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return zero, err
	}
	switch v := res.(type) {
	case *messages.FailResp:
		if v == nil || v.Err == nil {
			return zero, &RuntimeError{Code: transport.SystemError, Message: "actor 返回空错误"}
		}
		return zero, v.Err
	case T:
		return v, nil
	default:
		return zero, &RuntimeError{Code: transport.SystemError, Message: "actor 返回类型非法"}
	}
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, &RuntimeError{Code: transport.Timeout, Message: "actor 请求超时", Cause: errx.ErrTimeout.WithCause(err)}
		}
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   errx.ErrUnavailable.WithCause(err),
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

// CodeFromError 只识别 RuntimeError，业务错误由接口层按错误码映射。
func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
