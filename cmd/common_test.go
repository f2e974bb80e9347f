package cmd

import (
	"testing"

	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/internal/shared/logs"
	"MergeIsland/internal/shared/serverconfig"

	"go.uber.org/zap"
)

// 仓库自带的配置和物品表必须能直接启动。
func TestReadConfig(t *testing.T) {
	conf := serverconfig.Load("")
	if err := logs.Init("TestReadConfig", serverconfig.LogConfig{Level: conf.Log.Level, Dev: true}); err != nil {
		t.Fatalf("logs.Init err=%v", err)
	}
	logs.Info("conf", zap.Any("board", conf.Board))

	if _, err := entity.ParsePolicy(conf.Board.ProductionPolicy); err != nil {
		t.Fatalf("production_policy 非法: %v", err)
	}

	catalog, warnings, err := item.Load(conf.Board.CatalogPath)
	if err != nil {
		t.Fatalf("item.Load err=%v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("自带物品表不应有警告: %v", warnings)
	}
	for _, s := range conf.Board.StartItems {
		if _, err := catalog.Lookup(s.ItemID); err != nil {
			t.Fatalf("start_items 引用了未知物品 %s", s.ItemID)
		}
		if s.Row < 0 || s.Row >= conf.Board.Size || s.Col < 0 || s.Col >= conf.Board.Size {
			t.Fatalf("start_items 越界 %+v", s)
		}
	}
}
