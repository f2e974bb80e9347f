package model

import (
	"time"

	"MergeIsland/internal/board/entity"
)

// BoardDoc 是 mongodb 的棋盘文档，_id 为 board_id。
type BoardDoc struct {
	BoardID       string     `bson:"_id"`
	FormatVersion int        `bson:"format_version"`
	Version       uint64     `bson:"version"`
	Entries       []EntryDoc `bson:"entries"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

type EntryDoc struct {
	ItemID string `bson:"item_id"`
	Row    int    `bson:"row"`
	Col    int    `bson:"col"`
}

func BoardDocToSnapshot(doc BoardDoc) *entity.BoardPersistSnapshot {
	s := entity.Snapshot{
		FormatVersion: doc.FormatVersion,
		BoardID:       entity.BoardID(doc.BoardID),
		Entries:       make([]entity.SnapshotEntry, 0, len(doc.Entries)),
	}
	for _, e := range doc.Entries {
		s.Entries = append(s.Entries, entity.SnapshotEntry{ItemID: e.ItemID, Row: e.Row, Col: e.Col})
	}
	return &entity.BoardPersistSnapshot{Version: doc.Version, Snapshot: s}
}

func SnapshotToBoardDoc(s *entity.BoardPersistSnapshot, now time.Time) BoardDoc {
	doc := BoardDoc{
		BoardID:       string(s.Snapshot.BoardID),
		FormatVersion: s.Snapshot.FormatVersion,
		Version:       s.Version,
		Entries:       make([]EntryDoc, 0, len(s.Snapshot.Entries)),
		UpdatedAt:     now,
	}
	for _, e := range s.Snapshot.Entries {
		doc.Entries = append(doc.Entries, EntryDoc{ItemID: e.ItemID, Row: e.Row, Col: e.Col})
	}
	return doc
}
