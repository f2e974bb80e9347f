package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/app/port"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	saveTimeout       = 3 * time.Second
	retryBackoff      = 200 * time.Millisecond
)

type BoardID = entity.BoardID

type Config struct {
	Size       int
	StartItems []entity.SnapshotEntry
	FlushEvery time.Duration
	Logger     logx.Logger
}

// BoardDC 是单个棋盘的写回缓存：actor 线程里构建快照，后台 goroutine 写库，version 大的覆盖小的。
type BoardDC struct {
	repo       port.BoardRepository
	catalog    *item.Catalog
	size       int
	starts     []entity.SnapshotEntry
	flushEvery time.Duration
	log        logx.Logger
	entity     *entity.Board

	mu      sync.Mutex
	pending *entity.BoardPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewBoardDC(repo port.BoardRepository, catalog *item.Catalog, cfg Config) *BoardDC {
	d := &BoardDC{
		repo:       repo,
		catalog:    catalog,
		size:       cfg.Size,
		starts:     cfg.StartItems,
		flushEvery: cfg.FlushEvery,
		log:        cfg.Logger,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if d.flushEvery <= 0 {
		d.flushEvery = defaultFlushEvery
	}
	if d.log == nil {
		d.log = logx.Nop()
	}
	go d.writerLoop()
	return d
}

// Load 有存档时按存档恢复；没有存档时放置初始物品，新棋盘带 dirty，会在下一次 Flush 落盘。
func (d *BoardDC) Load(ctx context.Context, id BoardID, opts entity.Options) (*entity.Board, error) {
	if d.repo == nil {
		return nil, errors.New("board repository is nil")
	}
	snap, err := d.repo.LoadSnapshot(ctx, id)
	if err == nil && snap == nil {
		err = entity.ErrSnapshotNotFound
	}
	switch {
	case errors.Is(err, entity.ErrSnapshotNotFound):
		b, err := d.seed(id, opts)
		if err != nil {
			return nil, err
		}
		d.entity = b
		return b, nil
	case err != nil:
		return nil, app.Wrap(app.CodeUnavailable, "棋盘存档读取失败", err).
			WithReason(app.ReasonRepoLoadFail).
			WithData("board_id", string(id))
	}

	// 后续快照从库里的 version 往上编号。
	d.mu.Lock()
	if snap.Version > d.version {
		d.version = snap.Version
	}
	d.mu.Unlock()

	// 存档里的 board_id 以请求为准。
	s := snap.Snapshot
	s.BoardID = id
	b, warnings, err := entity.Deserialize(&s, d.catalog, d.size, opts)
	if err != nil {
		return nil, app.Wrap(app.CodeInternalServer, "棋盘存档解析失败", err).
			WithReason(app.ReasonSnapshotDecode).
			WithData("board_id", string(id))
	}
	d.logWarnings(ctx, id, app.ReasonSnapshotEntrySkipped, warnings)
	d.entity = b
	return b, nil
}

func (d *BoardDC) seed(id BoardID, opts entity.Options) (*entity.Board, error) {
	sink := opts.Sink
	opts.Sink = nil
	b, err := entity.NewBoard(id, d.size, d.catalog, opts)
	if err != nil {
		return nil, err
	}
	d.logWarnings(context.Background(), id, app.ReasonStartItemSkipped, entity.Populate(b, d.starts))
	b.SetSink(sink)
	return b, nil
}

func (d *BoardDC) logWarnings(ctx context.Context, id BoardID, reason app.Reason, warnings []entity.LoadWarning) {
	for _, w := range warnings {
		logx.ReportBiz(ctx, d.log, logx.NewBizLog("board.load", reason.Code, w.String()),
			zap.String("board_id", string(id)))
	}
}

// Flush 构建最新快照并交给写协程，不等待写库结果。
func (d *BoardDC) Flush(ctx context.Context) error {
	_ = ctx
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errors.New("board repository is nil")
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

func (d *BoardDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *BoardDC) Entity() *entity.Board {
	return d.entity
}

func (d *BoardDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 先 Flush 再等写协程把队列写完。
func (d *BoardDC) Close(ctx context.Context) error {
	_ = d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *BoardDC) buildNextSnapshot() (*entity.BoardPersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *BoardDC) enqueueLatest(s *entity.BoardPersistSnapshot) {
	if s == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.offerLocked(s)
	d.mu.Unlock()
	d.notify()
}

func (d *BoardDC) requeueOnError(s *entity.BoardPersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.offerLocked(s)
	d.mu.Unlock()
	d.notify()
}

func (d *BoardDC) offerLocked(s *entity.BoardPersistSnapshot) {
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
}

func (d *BoardDC) notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *BoardDC) popPending() *entity.BoardPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *BoardDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *BoardDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := d.repo.Save(ctx, s)
		cancel()
		if err != nil {
			logx.ReportSysError(ctx, d.log, logx.NewSysLog("board.save",
				app.Wrap(app.CodeUnavailable, "棋盘存档写入失败", err).WithReason(app.ReasonRepoSaveFail)),
				zap.String("board_id", string(s.Snapshot.BoardID)),
				zap.Uint64("version", s.Version))
			// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。关闭后不再重试。
			d.requeueOnError(s)
			time.Sleep(retryBackoff)
			continue
		}
	}
}
