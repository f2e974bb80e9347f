package entity

import (
	"fmt"

	"MergeIsland/internal/shared/gameconfig/item"
	"MergeIsland/modules/kit/errx"
)

const SnapshotFormatVersion = 1

// SnapshotEntry 只记录 item id 与位置；生成器冷却等派生状态不落盘，加载后一律 ready。
type SnapshotEntry struct {
	ItemID string `json:"item_id" yaml:"item_id" bson:"item_id"`
	Row    int    `json:"row" yaml:"row" bson:"row"`
	Col    int    `json:"col" yaml:"col" bson:"col"`
}

type Snapshot struct {
	FormatVersion int             `json:"format_version" yaml:"format_version" bson:"format_version"`
	BoardID       BoardID         `json:"board_id" yaml:"board_id" bson:"board_id"`
	Entries       []SnapshotEntry `json:"entries" yaml:"entries" bson:"entries"`
}

// LoadWarning 描述加载时被跳过的一条记录。
type LoadWarning struct {
	Index  int
	Entry  SnapshotEntry
	Reason string
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("entry #%d %s@(%d,%d): %s", w.Index, w.Entry.ItemID, w.Entry.Row, w.Entry.Col, w.Reason)
}

const (
	WarnUnknownItem  = "unknown item id"
	WarnOutOfRange   = "position out of range"
	WarnCellOccupied = "cell already occupied"
)

// Serialize 按活跃物品的放入顺序输出。
func Serialize(b *Board) Snapshot {
	s := Snapshot{
		FormatVersion: SnapshotFormatVersion,
		BoardID:       b.id,
		Entries:       make([]SnapshotEntry, 0, len(b.active)),
	}
	for _, it := range b.active {
		s.Entries = append(s.Entries, SnapshotEntry{ItemID: it.def.ItemID(), Row: it.cell.Row, Col: it.cell.Col})
	}
	return s
}

// Deserialize 尽力加载：无法解析的记录被跳过并返回警告，不会中止整个加载。
// 返回的棋盘不带 dirty 标记；opts.Sink 在加载完成后才挂上。
func Deserialize(s *Snapshot, catalog *item.Catalog, size int, opts Options) (*Board, []LoadWarning, error) {
	if s == nil {
		return nil, nil, ErrSnapshotNotFound
	}
	if s.FormatVersion > SnapshotFormatVersion {
		return nil, nil, ErrSnapshotUnsupported.WithData("format_version", s.FormatVersion)
	}
	sink := opts.Sink
	opts.Sink = nil
	b, err := NewBoard(s.BoardID, size, catalog, opts)
	if err != nil {
		return nil, nil, err
	}
	warnings := Populate(b, s.Entries)
	b.ClearDirty()
	b.SetSink(sink)
	return b, warnings, nil
}

// Populate 用运行时同一个 CreateItem 逐条放置，新棋盘的初始物品也走这里。
func Populate(b *Board, entries []SnapshotEntry) []LoadWarning {
	var warnings []LoadWarning
	for i, e := range entries {
		def, err := b.catalog.Lookup(e.ItemID)
		if err != nil {
			warnings = append(warnings, LoadWarning{Index: i, Entry: e, Reason: WarnUnknownItem})
			continue
		}
		if _, err := b.CreateItem(def, Cell{Row: e.Row, Col: e.Col}); err != nil {
			reason := err.Error()
			switch code, _ := errx.CodeOf(err); code {
			case CodeCellOutOfRange:
				reason = WarnOutOfRange
			case CodeCellOccupied:
				reason = WarnCellOccupied
			}
			warnings = append(warnings, LoadWarning{Index: i, Entry: e, Reason: reason})
		}
	}
	return warnings
}
