package entity

import (
	"time"

	"MergeIsland/internal/shared/gameconfig/item"
)

// ItemSeq 是棋盘内的物品序号，只用于外部引用，不参与合成判断。
type ItemSeq uint64

// Item 是放在棋盘上的物品实例，共享只读的 Definition。
type Item struct {
	seq     ItemSeq
	def     *item.Definition
	cell    Cell
	placed  bool
	ready   bool
	readyAt time.Time
}

func (it *Item) Seq() ItemSeq {
	return it.seq
}

func (it *Item) Definition() *item.Definition {
	return it.def
}

func (it *Item) ItemID() string {
	return it.def.ItemID()
}

func (it *Item) IsGenerator() bool {
	return it.def.IsGenerator()
}

// Cell 返回当前所在格子；被合成消耗后 ok 为 false。
func (it *Item) Cell() (Cell, bool) {
	return it.cell, it.placed
}

// Ready 仅对生成器有意义。
func (it *Item) Ready() bool {
	return it.ready
}

func (it *Item) ReadyAt() time.Time {
	return it.readyAt
}

func (it *Item) View() ItemView {
	return ItemView{
		Seq:       it.seq,
		ItemID:    it.def.ItemID(),
		Row:       it.cell.Row,
		Col:       it.cell.Col,
		Generator: it.def.IsGenerator(),
		Ready:     it.ready,
	}
}

// ItemView 是物品的值拷贝，事件与查询结果都用它，可以安全地跨 goroutine 传递。
type ItemView struct {
	Seq       ItemSeq `json:"seq"`
	ItemID    string  `json:"item_id"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Generator bool    `json:"generator"`
	Ready     bool    `json:"ready"`
}

func (v ItemView) Cell() Cell {
	return Cell{Row: v.Row, Col: v.Col}
}
