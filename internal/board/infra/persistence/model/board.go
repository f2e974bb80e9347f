package model

import (
	"time"

	"MergeIsland/internal/board/entity"
)

// Board 是 mysql 的棋盘头表，一个玩家一行。
type Board struct {
	BoardID       string    `gorm:"column:board_id;type:varchar(64);comment:棋盘ID(uid);primaryKey;not null;" json:"board_id"`
	FormatVersion int       `gorm:"column:format_version;type:int UNSIGNED;comment:存档格式版本;not null;default:1;" json:"format_version"`
	Version       uint64    `gorm:"column:version;type:bigint UNSIGNED;comment:写回版本;not null;default:0;" json:"version"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (m *Board) TableName() string {
	return "board"
}

// BoardItem 是棋盘上的一个物品，Ord 保持放入顺序。
type BoardItem struct {
	ID      uint64 `gorm:"column:id;type:bigint UNSIGNED;primaryKey;autoIncrement;" json:"id"`
	BoardID string `gorm:"column:board_id;type:varchar(64);comment:棋盘ID;not null;index:idx_board_ord,priority:1;" json:"board_id"`
	Ord     int    `gorm:"column:ord;type:int UNSIGNED;comment:放入顺序;not null;index:idx_board_ord,priority:2;" json:"ord"`
	ItemID  string `gorm:"column:item_id;type:varchar(64);comment:物品ID;not null;" json:"item_id"`
	Row     int    `gorm:"column:row_idx;type:int;comment:行;not null;" json:"row"`
	Col     int    `gorm:"column:col_idx;type:int;comment:列;not null;" json:"col"`
}

func (m *BoardItem) TableName() string {
	return "board_item"
}

func BoardRowsToSnapshot(b Board, items []BoardItem) *entity.BoardPersistSnapshot {
	s := entity.Snapshot{
		FormatVersion: b.FormatVersion,
		BoardID:       entity.BoardID(b.BoardID),
		Entries:       make([]entity.SnapshotEntry, 0, len(items)),
	}
	for _, it := range items {
		s.Entries = append(s.Entries, entity.SnapshotEntry{ItemID: it.ItemID, Row: it.Row, Col: it.Col})
	}
	return &entity.BoardPersistSnapshot{Version: b.Version, Snapshot: s}
}

func SnapshotToBoardRows(s *entity.BoardPersistSnapshot, now time.Time) (Board, []BoardItem) {
	id := string(s.Snapshot.BoardID)
	b := Board{
		BoardID:       id,
		FormatVersion: s.Snapshot.FormatVersion,
		Version:       s.Version,
		UpdatedAt:     now,
	}
	items := make([]BoardItem, 0, len(s.Snapshot.Entries))
	for i, e := range s.Snapshot.Entries {
		items = append(items, BoardItem{BoardID: id, Ord: i, ItemID: e.ItemID, Row: e.Row, Col: e.Col})
	}
	return b, items
}
