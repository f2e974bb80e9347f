package actors

import (
	"context"
	"time"

	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/app/port"
	"MergeIsland/internal/board/dc"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/modules/kit/errx"
	"MergeIsland/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type BoardID = entity.BoardID

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// Notifier 接收每个棋盘产生的事件（包括定时生产），用于推送给在线连接。
type Notifier interface {
	Notify(boardID string, events []messages.EventRecord)
}

// Deps 是所有棋盘 actor 共享的依赖。
type Deps struct {
	Repo       port.BoardRepository
	Catalog    *item.Catalog
	Size       int
	Policy     entity.ProductionPolicy
	StartItems []entity.SnapshotEntry
	Seed       int64
	TickEvery  time.Duration
	FlushEvery time.Duration
	Logger     logx.Logger
	Notifier   Notifier
	// Now 为空时使用 time.Now。
	Now func() time.Time
}

func (d Deps) logger() logx.Logger {
	if d.Logger == nil {
		return logx.Nop()
	}
	return d.Logger
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

const dcCloseTimeout = 3 * time.Second

type BoardActor struct {
	state      State
	boardID    BoardID
	deps       Deps
	dc         *dc.BoardDC
	board      *entity.Board
	initErr    error
	dispatcher *Dispatcher
	outbox     []entity.Event
	flushStop  chan struct{}
	tickStop   chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

type productionTick struct{}

func (productionTick) NotInfluenceReceiveTimeout() {}

func NewBoardActor(boardID BoardID, deps Deps) *BoardActor {
	return &BoardActor{
		state:   None,
		boardID: boardID,
		deps:    deps,
		dc: dc.NewBoardDC(deps.Repo, deps.Catalog, dc.Config{
			Size:       deps.Size,
			StartItems: deps.StartItems,
			FlushEvery: deps.FlushEvery,
			Logger:     deps.logger(),
		}),
		dispatcher: NewDispatcher(),
	}
}

func (p *BoardActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopLoops()
		p.closeDC()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopLoops()
		p.state = Offline
		return
	case *actor.Restarting:
		// 重启会经 producer 新建 actor 和 dc，旧 dc 必须在这里写完并退出。
		p.stopLoops()
		p.closeDC()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(context.TODO()); err != nil {
			p.deps.logger().Error("board periodic flush failed", zap.String("board_id", string(p.boardID)), zap.Error(err))
		}
		return
	case productionTick:
		if p.state != Online {
			return
		}
		if _, err := p.board.Tick(p.deps.now()); err != nil {
			p.deps.logger().Warn("board tick rejected", zap.String("board_id", string(p.boardID)), zap.Error(err))
		}
		p.drainOutbox()
		return
	case messages.BoardMessage:
		if p.state != Online {
			if p.initErr != nil {
				ctx.Respond(fail(p.initErr))
				return
			}
			ctx.Respond(fail(errBoardNotOnline(p.boardID)))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *BoardActor) init(ctx actor.Context) {
	b, err := p.dc.Load(context.TODO(), p.boardID, entity.Options{
		Policy: p.deps.Policy,
		Roller: entity.NewRoller(p.deps.Seed),
		Now:    p.deps.Now,
		Sink:   entity.SinkFunc(p.collect),
	})
	if err != nil {
		// 沿用原始错误码，只补 reason 和 board_id。
		code, ok := errx.CodeOf(err)
		if !ok {
			code = app.CodeInternalServer
		}
		err = app.Wrap(code, "棋盘启动失败", err).
			WithReason(app.ReasonActorNotStarted).
			WithData("board_id", string(p.boardID))
		logx.ReportSysError(context.Background(), p.deps.logger(), logx.NewSysLog("board.init", err),
			zap.String("board_id", string(p.boardID)))
		p.initErr = err
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	p.state = Online
	p.board = b
	p.startLoops(ctx)
}

func (p *BoardActor) closeDC() {
	ctx, cancel := context.WithTimeout(context.Background(), dcCloseTimeout)
	defer cancel()
	if err := p.dc.Close(ctx); err != nil {
		p.deps.logger().Error("board dc close failed", zap.String("board_id", string(p.boardID)), zap.Error(err))
	}
}

func (p *BoardActor) collect(events []entity.Event) {
	p.outbox = append(p.outbox, events...)
}

// drainOutbox 取出本轮事件并交给 Notifier。
func (p *BoardActor) drainOutbox() []messages.EventRecord {
	if len(p.outbox) == 0 {
		return nil
	}
	records := toEventRecords(p.outbox)
	p.outbox = nil
	if p.deps.Notifier != nil {
		p.deps.Notifier.Notify(string(p.boardID), records)
	}
	return records
}

func (p *BoardActor) BoardID() BoardID {
	return p.boardID
}

func (p *BoardActor) Board() *entity.Board {
	return p.board
}

func (p *BoardActor) DC() *dc.BoardDC {
	return p.dc
}

func (p *BoardActor) startLoops(ctx actor.Context) {
	if p.flushStop == nil {
		p.flushStop = startTicker(ctx, p.dc.FlushEvery(), flushTick{})
	}
	if p.tickStop == nil && p.deps.Policy == entity.TimedProduction {
		p.tickStop = startTicker(ctx, p.deps.TickEvery, productionTick{})
	}
}

func (p *BoardActor) stopLoops() {
	if p.flushStop != nil {
		close(p.flushStop)
		p.flushStop = nil
	}
	if p.tickStop != nil {
		close(p.tickStop)
		p.tickStop = nil
	}
}

// startTicker 周期性给自己发 msg；interval <= 0 时不启动。
func startTicker(ctx actor.Context, interval time.Duration, msg any) chan struct{} {
	if interval <= 0 {
		return nil
	}
	stop := make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, msg)
			case <-stop:
				return
			}
		}
	}(stop, interval)
	return stop
}
