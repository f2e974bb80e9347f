package memory

import (
	"context"
	"slices"
	"sync"

	"MergeIsland/internal/board/entity"
)

// BoardRepository 是进程内存档，开发环境与测试用；重启后丢失。
type BoardRepository struct {
	mu       sync.RWMutex
	boards   map[entity.BoardID]entity.Snapshot
	versions map[entity.BoardID]uint64
}

func NewBoardRepository() *BoardRepository {
	return &BoardRepository{
		boards:   make(map[entity.BoardID]entity.Snapshot),
		versions: make(map[entity.BoardID]uint64),
	}
}

func (r *BoardRepository) LoadSnapshot(ctx context.Context, id entity.BoardID) (*entity.BoardPersistSnapshot, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.boards[id]
	if !ok {
		return nil, entity.ErrSnapshotNotFound.WithData("board_id", string(id))
	}
	s.Entries = slices.Clone(s.Entries)
	return &entity.BoardPersistSnapshot{Version: r.versions[id], Snapshot: s}, nil
}

// Save 丢弃比已保存版本更旧的快照。
func (r *BoardRepository) Save(ctx context.Context, s *entity.BoardPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	id := s.Snapshot.BoardID
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.versions[id]; ok && v > s.Version {
		return nil
	}
	snap := s.Snapshot
	snap.Entries = slices.Clone(snap.Entries)
	r.boards[id] = snap
	r.versions[id] = s.Version
	return nil
}
