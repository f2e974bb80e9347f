package actors

import (
	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/actor/messages"
)

func fail(err error) *messages.FailResp {
	return &messages.FailResp{Err: err}
}

func errBoardNotOnline(id BoardID) error {
	return app.ErrBoardNotOnline.WithData("board_id", string(id))
}

func toItemState(v entity.ItemView) messages.ItemState {
	return messages.ItemState{
		Seq:       uint64(v.Seq),
		ItemID:    v.ItemID,
		Row:       v.Row,
		Col:       v.Col,
		Generator: v.Generator,
		Ready:     v.Ready,
	}
}

func itemStatePtr(it *entity.Item) *messages.ItemState {
	if it == nil {
		return nil
	}
	s := toItemState(it.View())
	return &s
}

func toEventRecords(events []entity.Event) []messages.EventRecord {
	out := make([]messages.EventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, messages.EventRecord{Kind: string(e.Kind()), Data: e})
	}
	return out
}

func toBoardState(b *entity.Board) messages.BoardState {
	views := b.Views()
	items := make([]messages.ItemState, 0, len(views))
	for _, v := range views {
		items = append(items, toItemState(v))
	}
	return messages.BoardState{
		BoardID: string(b.ID()),
		Size:    b.Size(),
		Policy:  b.Policy().String(),
		Count:   b.Count(),
		Items:   items,
	}
}

func toCell(c messages.CellRef) entity.Cell {
	return entity.Cell{Row: c.Row, Col: c.Col}
}
