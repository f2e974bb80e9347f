package local

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"MergeIsland/internal/board/entity"

	"github.com/quasilyte/gdata/v2"
)

func newTestRepo(t *testing.T) *BoardRepository {
	t.Helper()
	m, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("merge_island_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("当前环境无法创建 gdata 存储: %v", err)
	}
	return NewBoardRepository(m)
}

func TestBoardRepository_存取往返(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := entity.BoardID(fmt.Sprintf("u%d", time.Now().UnixNano()))

	if _, err := r.LoadSnapshot(ctx, id); !errors.Is(err, entity.ErrSnapshotNotFound) {
		t.Fatalf("期望 ErrSnapshotNotFound, err=%v", err)
	}
	want := entity.Snapshot{
		FormatVersion: entity.SnapshotFormatVersion,
		BoardID:       id,
		Entries:       []entity.SnapshotEntry{{ItemID: "chest_1", Row: 3, Col: 3}, {ItemID: "wood_1", Row: 2, Col: 4}},
	}
	if err := r.Save(ctx, &entity.BoardPersistSnapshot{Version: 7, Snapshot: want}); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	got, err := r.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot err=%v", err)
	}
	if got.Version != 7 || !reflect.DeepEqual(got.Snapshot, want) {
		t.Fatalf("往返不一致 want=%+v got=%+v", want, *got)
	}
}

func TestPropKey_拒绝路径字符(t *testing.T) {
	for _, id := range []entity.BoardID{"", "../x", "a/b", "a b"} {
		if _, err := propKey(id); err == nil {
			t.Fatalf("期望 %q 被拒绝", id)
		}
	}
	if k, err := propKey("1001_dev-A"); err != nil || k != "1001_dev-A" {
		t.Fatalf("期望合法 key 通过, got=%q err=%v", k, err)
	}
}
