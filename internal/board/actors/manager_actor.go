package actors

import (
	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// ManagerActor 按 board_id 懒创建棋盘 actor 并转发消息，自己不碰棋盘状态。
type ManagerActor struct {
	deps        Deps
	boardActors map[BoardID]*actor.PID
	boardOf     map[string]BoardID
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:        deps,
		boardActors: make(map[BoardID]*actor.PID),
		boardOf:     make(map[string]BoardID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		m.forget(msg.Who)
		return
	case messages.BoardMessage:
		if msg.BoardID() == "" {
			ctx.Respond(fail(errx.ErrReqParamERR.WithData("board_id", "")))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, BoardID(msg.BoardID())))
	default:
		return
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, boardID BoardID) *actor.PID {
	if pid, ok := m.boardActors[boardID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewBoardActor(boardID, m.deps)
	})
	pid := ctx.Spawn(props)
	m.boardActors[boardID] = pid
	m.boardOf[pid.Id] = boardID
	return pid
}

// forget 在棋盘 actor 退出后移除，下一条消息会重新加载。
func (m *ManagerActor) forget(who *actor.PID) {
	if who == nil {
		return
	}
	id, ok := m.boardOf[who.Id]
	if !ok {
		return
	}
	delete(m.boardOf, who.Id)
	if pid := m.boardActors[id]; pid != nil && pid.Id == who.Id {
		delete(m.boardActors, id)
	}
	m.deps.logger().Info("board actor terminated", zap.String("board_id", string(id)))
}
