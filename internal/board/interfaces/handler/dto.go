package handler

import "MergeIsland/internal/shared/actor/messages"

// DropReq.To 为空表示拖出棋盘。
type DropReq struct {
	From messages.CellRef  `json:"from" mapstructure:"from"`
	To   *messages.CellRef `json:"to" mapstructure:"to"`
}

type CellReq struct {
	Row int `json:"row" mapstructure:"row"`
	Col int `json:"col" mapstructure:"col"`
}

func (r CellReq) Ref() messages.CellRef {
	return messages.CellRef{Row: r.Row, Col: r.Col}
}

type CreateItemReq struct {
	ItemID string `json:"item_id" mapstructure:"item_id" binding:"required"`
	Row    int    `json:"row" mapstructure:"row"`
	Col    int    `json:"col" mapstructure:"col"`
}

type TokenReq struct {
	BoardID string `json:"board_id" mapstructure:"board_id"`
}

type TokenResp struct {
	BoardID string `json:"board_id"`
	Token   string `json:"token"`
}

type ItemAtResp struct {
	Item *messages.ItemState `json:"item"`
}
