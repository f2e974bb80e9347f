package messages

// HB*: handler -> board actor；BH*: board actor -> handler。

type HBGetBoard struct {
	BoardBaseMessage
}

type BHGetBoard struct {
	Board BoardState
}

type HBItemAt struct {
	BoardBaseMessage
	At CellRef
}

type BHItemAt struct {
	Item *ItemState
}

// HBDrop.To 为 nil 表示拖出棋盘。
type HBDrop struct {
	BoardBaseMessage
	From CellRef
	To   *CellRef
}

type BHDrop struct {
	Outcome string        `json:"outcome"`
	Item    *ItemState    `json:"item,omitempty"`
	Events  []EventRecord `json:"events"`
}

type HBProduce struct {
	BoardBaseMessage
	At CellRef
}

type BHProduce struct {
	Outcome string        `json:"outcome"`
	Product *ItemState    `json:"product,omitempty"`
	Events  []EventRecord `json:"events"`
}

type HBCreateItem struct {
	BoardBaseMessage
	ItemID string
	At     CellRef
}

type BHCreateItem struct {
	Item   ItemState     `json:"item"`
	Events []EventRecord `json:"events"`
}
