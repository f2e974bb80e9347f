package entity

// BoardPersistSnapshot 是写回队列里的一份快照，version 大的覆盖小的。
type BoardPersistSnapshot struct {
	Version  uint64
	Snapshot Snapshot
}

func (b *Board) BuildPersistSnapshot(version uint64) (*BoardPersistSnapshot, bool) {
	if b == nil || !b.Dirty() {
		return nil, false
	}
	return &BoardPersistSnapshot{
		Version:  version,
		Snapshot: Serialize(b),
	}, true
}
