package port

import (
	"context"

	"MergeIsland/internal/board/entity"
)

// BoardRepository 只存取快照，棋盘的重建由 dc 负责。
// LoadSnapshot 连同库里的写回 version 一起返回；存档不存在时返回 entity.ErrSnapshotNotFound。
type BoardRepository interface {
	LoadSnapshot(ctx context.Context, id entity.BoardID) (*entity.BoardPersistSnapshot, error)
	Save(ctx context.Context, s *entity.BoardPersistSnapshot) error
}
