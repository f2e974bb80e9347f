package actor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"MergeIsland/internal/board/actors"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/board/infra/persistence/memory"
	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/internal/shared/transport"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events map[string][]messages.EventRecord
}

func (n *recordingNotifier) Notify(boardID string, events []messages.EventRecord) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.events == nil {
		n.events = map[string][]messages.EventRecord{}
	}
	n.events[boardID] = append(n.events[boardID], events...)
}

func (n *recordingNotifier) count(boardID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events[boardID])
}

func newTestRuntime(t *testing.T, policy entity.ProductionPolicy) (*Runtime, *memory.BoardRepository, *recordingNotifier) {
	t.Helper()
	catalog, _, err := item.New("test", []item.Spec{
		{ItemID: "wood_1", FamilyID: "wood", Level: 1},
		{ItemID: "wood_2", FamilyID: "wood", Level: 2},
		{ItemID: "gen_1", FamilyID: "gen", Level: 1, IsGenerator: true, ProductionTime: 0.05,
			Production: []item.ProductionEntry{{ItemID: "wood_1", Weight: 100}}},
	})
	if err != nil {
		t.Fatalf("item.New err=%v", err)
	}
	repo := memory.NewBoardRepository()
	notifier := &recordingNotifier{}
	r := NewRuntime(actors.Deps{
		Repo:       repo,
		Catalog:    catalog,
		Size:       3,
		Policy:     policy,
		StartItems: []entity.SnapshotEntry{{ItemID: "gen_1", Row: 1, Col: 1}},
		Seed:       7,
		TickEvery:  10 * time.Millisecond,
		FlushEvery: 20 * time.Millisecond,
		Notifier:   notifier,
	}, time.Second)
	t.Cleanup(r.Shutdown)
	return r, repo, notifier
}

func TestRuntime_新棋盘带初始物品(t *testing.T) {
	r, _, _ := newTestRuntime(t, entity.ClickProduction)
	state, err := r.GetBoard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetBoard err=%v", err)
	}
	if state.Size != 3 || state.Count != 1 || state.Items[0].ItemID != "gen_1" || state.Policy != "click" {
		t.Fatalf("初始棋盘不符合预期: %+v", state)
	}
}

func TestRuntime_生产与合成(t *testing.T) {
	r, _, notifier := newTestRuntime(t, entity.ClickProduction)
	ctx := context.Background()

	p1, err := r.Produce(ctx, "u1", messages.CellRef{Row: 1, Col: 1})
	if err != nil || p1.Outcome != "produced" || p1.Product == nil {
		t.Fatalf("期望 produced, got=%+v err=%v", p1, err)
	}
	p2, err := r.Produce(ctx, "u1", messages.CellRef{Row: 1, Col: 1})
	if err != nil || p2.Outcome != "produced" {
		t.Fatalf("期望第二次 produced, got=%+v err=%v", p2, err)
	}

	from := messages.CellRef{Row: p1.Product.Row, Col: p1.Product.Col}
	to := &messages.CellRef{Row: p2.Product.Row, Col: p2.Product.Col}
	d, err := r.Drop(ctx, "u1", from, to)
	if err != nil || d.Outcome != "merged" || d.Item == nil || d.Item.ItemID != "wood_2" {
		t.Fatalf("期望合成出 wood_2, got=%+v err=%v", d, err)
	}
	if len(d.Events) != 4 {
		t.Fatalf("期望合成返回 4 个事件, got=%d", len(d.Events))
	}
	got, err := r.ItemAt(ctx, "u1", *to)
	if err != nil || got == nil || got.ItemID != "wood_2" {
		t.Fatalf("ItemAt 期望 wood_2, got=%v err=%v", got, err)
	}
	if notifier.count("u1") == 0 {
		t.Fatalf("期望 Notifier 收到事件")
	}
}

func TestRuntime_业务错误原样返回(t *testing.T) {
	r, _, _ := newTestRuntime(t, entity.ClickProduction)
	ctx := context.Background()

	if _, err := r.CreateItem(ctx, "u1", "wood_1", messages.CellRef{Row: 1, Col: 1}); !errors.Is(err, entity.ErrCellOccupied) {
		t.Fatalf("期望 ErrCellOccupied, err=%v", err)
	}
	if _, err := r.Drop(ctx, "u1", messages.CellRef{Row: 0, Col: 0}, &messages.CellRef{Row: 1, Col: 1}); !errors.Is(err, entity.ErrItemNotFound) {
		t.Fatalf("期望空格子拖动返回 ErrItemNotFound, err=%v", err)
	}
	if _, err := r.Drop(ctx, "u1", messages.CellRef{Row: 1, Col: 1}, nil); !errors.Is(err, entity.ErrNilTarget) {
		t.Fatalf("期望 ErrNilTarget, err=%v", err)
	}
	if _, err := r.GetBoard(ctx, ""); err == nil {
		t.Fatalf("期望空 board_id 返回错误")
	}
	if CodeFromError(nil) != transport.OK {
		t.Fatalf("nil 错误期望 OK")
	}
}

func TestRuntime_棋盘相互隔离(t *testing.T) {
	r, _, _ := newTestRuntime(t, entity.ClickProduction)
	ctx := context.Background()
	if _, err := r.CreateItem(ctx, "u1", "wood_1", messages.CellRef{Row: 0, Col: 0}); err != nil {
		t.Fatalf("CreateItem err=%v", err)
	}
	state, err := r.GetBoard(ctx, "u2")
	if err != nil || state.Count != 1 {
		t.Fatalf("u2 不应看到 u1 的物品, state=%+v err=%v", state, err)
	}
}

func TestRuntime_定时生产自动推送(t *testing.T) {
	r, _, notifier := newTestRuntime(t, entity.TimedProduction)
	if _, err := r.GetBoard(context.Background(), "u1"); err != nil {
		t.Fatalf("GetBoard err=%v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && notifier.count("u1") == 0 {
		time.Sleep(10 * time.Millisecond)
	}
	state, err := r.GetBoard(context.Background(), "u1")
	if err != nil || state.Count < 2 {
		t.Fatalf("期望定时生产产出物品, state=%+v err=%v", state, err)
	}
}

func TestRuntime_定期落盘(t *testing.T) {
	r, repo, _ := newTestRuntime(t, entity.ClickProduction)
	if _, err := r.CreateItem(context.Background(), "u1", "wood_1", messages.CellRef{Row: 0, Col: 0}); err != nil {
		t.Fatalf("CreateItem err=%v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s, err := repo.LoadSnapshot(context.Background(), "u1"); err == nil && len(s.Snapshot.Entries) == 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("期望 flush 周期内写入存档")
}

// panicOnceNotifier 第一次推送时 panic，让棋盘 actor 被 supervisor 重启。
type panicOnceNotifier struct {
	mu       sync.Mutex
	panicked bool
}

func (n *panicOnceNotifier) Notify(boardID string, events []messages.EventRecord) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.panicked {
		n.panicked = true
		panic("notify failed")
	}
}

func TestRuntime_重启前写出未落盘的修改(t *testing.T) {
	catalog, _, err := item.New("test", []item.Spec{
		{ItemID: "wood_1", FamilyID: "wood", Level: 1},
		{ItemID: "gen_1", FamilyID: "gen", Level: 1, IsGenerator: true,
			Production: []item.ProductionEntry{{ItemID: "wood_1", Weight: 100}}},
	})
	if err != nil {
		t.Fatalf("item.New err=%v", err)
	}
	repo := memory.NewBoardRepository()
	r := NewRuntime(actors.Deps{
		Repo:       repo,
		Catalog:    catalog,
		Size:       3,
		Policy:     entity.ClickProduction,
		StartItems: []entity.SnapshotEntry{{ItemID: "gen_1", Row: 1, Col: 1}},
		// 周期落盘不会在测试期间触发，存档只能来自重启时的写回。
		FlushEvery: time.Hour,
		Notifier:   &panicOnceNotifier{},
	}, time.Second)
	var once sync.Once
	shutdown := func() { once.Do(r.Shutdown) }
	t.Cleanup(shutdown)

	short, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if _, err := r.CreateItem(short, "u1", "wood_1", messages.CellRef{Row: 0, Col: 0}); err == nil {
		t.Fatalf("期望推送 panic 后请求得不到响应")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s, err := repo.LoadSnapshot(context.Background(), "u1")
		if err == nil && len(s.Snapshot.Entries) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	state, err := r.GetBoard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("重启后 GetBoard err=%v", err)
	}
	if state.Count != 2 {
		t.Fatalf("期望重启后保留 wood_1, state=%+v", state)
	}

	// 重启后的 dc 从库里的 version 继续编号，这次修改不会被当成旧版本丢弃。
	if _, err := r.CreateItem(context.Background(), "u1", "wood_1", messages.CellRef{Row: 0, Col: 1}); err != nil {
		t.Fatalf("重启后 CreateItem err=%v", err)
	}
	shutdown()
	s, err := repo.LoadSnapshot(context.Background(), "u1")
	if err != nil || len(s.Snapshot.Entries) != 3 {
		t.Fatalf("期望关闭后存档有 3 个物品, got=%+v err=%v", s, err)
	}
}
