package main

import (
	"context"
	"fmt"

	"MergeIsland/internal/board/app/port"
	"MergeIsland/internal/board/infra/persistence/local"
	"MergeIsland/internal/board/infra/persistence/memory"
	mongorepo "MergeIsland/internal/board/infra/persistence/mongodb"
	mysqlrepo "MergeIsland/internal/board/infra/persistence/mysql"
	"MergeIsland/internal/shared/infrastructure/db"
	"MergeIsland/internal/shared/infrastructure/mongo"
	"MergeIsland/internal/shared/logs"
	"MergeIsland/internal/shared/serverconfig"
)

// openRepository 按 board.storage 打开存档后端，返回的 closer 在进程退出前调用。
func openRepository(conf serverconfig.Config) (port.BoardRepository, func(), error) {
	noop := func() {}
	switch conf.Board.Storage {
	case serverconfig.StorageMemory:
		return memory.NewBoardRepository(), noop, nil
	case serverconfig.StorageLocal:
		repo, err := local.Open(conf.Local.AppName)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	case serverconfig.StorageMongoDB:
		client, database, err := mongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, noop, fmt.Errorf("open mongodb: %w", err)
		}
		return mongorepo.NewBoardRepository(database), func() {
			_ = client.Disconnect(context.Background())
		}, nil
	case serverconfig.StorageMySQL:
		gdb, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, noop, err
		}
		if err := mysqlrepo.Migrate(gdb); err != nil {
			return nil, noop, fmt.Errorf("migrate board tables: %w", err)
		}
		closer := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return mysqlrepo.NewBoardRepo(gdb), closer, nil
	default:
		return nil, noop, fmt.Errorf("unknown board storage %q", conf.Board.Storage)
	}
}
