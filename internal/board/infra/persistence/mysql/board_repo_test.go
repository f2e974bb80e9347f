package mysql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/board/infra/persistence/model"
	"MergeIsland/modules/kit/errx"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 需要本地 MySQL：MERGE_TEST_MYSQL_DSN=root:root@tcp(127.0.0.1:3306)/merge_test?parseTime=True
func newTestRepo(t *testing.T) *BoardRepo {
	t.Helper()
	dsn := os.Getenv("MERGE_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("未设置 MERGE_TEST_MYSQL_DSN")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("mysql 不可用: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate err=%v", err)
	}
	return NewBoardRepo(db)
}

func snapshot(id entity.BoardID, version uint64, entries ...entity.SnapshotEntry) *entity.BoardPersistSnapshot {
	return &entity.BoardPersistSnapshot{
		Version:  version,
		Snapshot: entity.Snapshot{FormatVersion: entity.SnapshotFormatVersion, BoardID: id, Entries: entries},
	}
}

func TestBoardRepo_存取与旧版本丢弃(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := entity.BoardID(fmt.Sprintf("t%d", time.Now().UnixNano()))

	if _, err := r.LoadSnapshot(ctx, id); !errors.Is(err, entity.ErrSnapshotNotFound) {
		t.Fatalf("期望 ErrSnapshotNotFound, err=%v", err)
	}

	v2 := snapshot(id, 2,
		entity.SnapshotEntry{ItemID: "chest_1", Row: 3, Col: 3},
		entity.SnapshotEntry{ItemID: "wood_1", Row: 2, Col: 4},
	)
	if err := r.Save(ctx, v2); err != nil {
		t.Fatalf("Save v2 err=%v", err)
	}
	if err := r.Save(ctx, snapshot(id, 1)); err != nil {
		t.Fatalf("旧版本写入应静默丢弃, err=%v", err)
	}
	got, err := r.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot err=%v", err)
	}
	if got.Version != 2 || !reflect.DeepEqual(got.Snapshot.Entries, v2.Snapshot.Entries) {
		t.Fatalf("期望保留 v2 且顺序不变, got=%+v", got)
	}
}

func TestWrapInfra_带原因与系统码(t *testing.T) {
	err := wrapInfra(OpSave, app.ReasonRepoSaveFail, errors.New("connection refused"), "1001")
	if !errors.Is(err, app.ErrUnavailable) {
		t.Fatalf("期望 SERVICE_UNAVAILABLE, err=%v", err)
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Reason() != app.ReasonRepoSaveFail.Code || e.Data()["op"] != OpSave {
		t.Fatalf("期望带 reason/op, got=%+v", e)
	}
}

func TestLockVersion_版本检查加行锁(t *testing.T) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:root@tcp(127.0.0.1:3306)/merge_test",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open err=%v", err)
	}
	var cur model.Board
	stmt := lockVersion(db, "1001").First(&cur).Statement
	sql := stmt.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") || !strings.Contains(sql, "board_id") {
		t.Fatalf("期望带 FOR UPDATE 的版本查询, sql=%s", sql)
	}
}
