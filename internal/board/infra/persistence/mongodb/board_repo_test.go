package mongodb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"MergeIsland/internal/board/entity"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// 需要本地 mongod：MERGE_TEST_MONGO_URI=mongodb://127.0.0.1:27017
func newTestRepo(t *testing.T) *BoardRepository {
	t.Helper()
	uri := os.Getenv("MERGE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("未设置 MERGE_TEST_MONGO_URI")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect err=%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongod 不可用: %v", err)
	}
	db := client.Database(fmt.Sprintf("merge_island_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewBoardRepository(db)
}

func snapshot(id entity.BoardID, version uint64, entries ...entity.SnapshotEntry) *entity.BoardPersistSnapshot {
	return &entity.BoardPersistSnapshot{
		Version:  version,
		Snapshot: entity.Snapshot{FormatVersion: entity.SnapshotFormatVersion, BoardID: id, Entries: entries},
	}
}

func TestBoardRepository_存取与旧版本丢弃(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if _, err := r.LoadSnapshot(ctx, "1001"); !errors.Is(err, entity.ErrSnapshotNotFound) {
		t.Fatalf("期望 ErrSnapshotNotFound, err=%v", err)
	}

	v2 := snapshot("1001", 2, entity.SnapshotEntry{ItemID: "wood_1", Row: 0, Col: 0})
	if err := r.Save(ctx, v2); err != nil {
		t.Fatalf("Save v2 err=%v", err)
	}
	if err := r.Save(ctx, snapshot("1001", 1)); err != nil {
		t.Fatalf("旧版本写入应静默丢弃, err=%v", err)
	}
	got, err := r.LoadSnapshot(ctx, "1001")
	if err != nil {
		t.Fatalf("LoadSnapshot err=%v", err)
	}
	if !reflect.DeepEqual(*got, *v2) {
		t.Fatalf("期望保留 v2, got=%+v", *got)
	}

	v3 := snapshot("1001", 3)
	if err := r.Save(ctx, v3); err != nil {
		t.Fatalf("Save v3 err=%v", err)
	}
	got, _ = r.LoadSnapshot(ctx, "1001")
	if got.Version != 3 || len(got.Snapshot.Entries) != 0 {
		t.Fatalf("期望 v3 空棋盘, got=%+v", got)
	}
}
