package entity

import (
	"encoding/json"
	"fmt"
)

type DropOutcome int

const (
	DropReturnedToOrigin DropOutcome = iota + 1
	DropMerged
	DropSwapped
	DropMoved
	// DropMergeCapped 同族同级但已到链顶，棋盘不变。
	DropMergeCapped
)

var dropOutcomeNames = map[DropOutcome]string{
	DropReturnedToOrigin: "returned_to_origin",
	DropMerged:           "merged",
	DropSwapped:          "swapped",
	DropMoved:            "moved",
	DropMergeCapped:      "merge_capped",
}

func (o DropOutcome) String() string {
	if s, ok := dropOutcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("drop_outcome(%d)", int(o))
}

func (o DropOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// DropResult.Item：合成时是新物品，移动/交换时是被拖动的物品。
type DropResult struct {
	Outcome DropOutcome
	Item    *Item
	Other   *Item
}

type ProductionOutcome int

const (
	Produced ProductionOutcome = iota + 1
	BoardFull
	Blocked
	NoProductSelected
	// ProductNotFound 生产表引用了物品表里不存在的定义。
	ProductNotFound
	NotGenerator
	NotReady
)

var productionOutcomeNames = map[ProductionOutcome]string{
	Produced:          "produced",
	BoardFull:         "board_full",
	Blocked:           "blocked",
	NoProductSelected: "no_product_selected",
	ProductNotFound:   "product_not_found",
	NotGenerator:      "not_generator",
	NotReady:          "not_ready",
}

func (o ProductionOutcome) String() string {
	if s, ok := productionOutcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("production_outcome(%d)", int(o))
}

func (o ProductionOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

type ProductionResult struct {
	Outcome ProductionOutcome
	// Product 仅在 Produced 时非空。
	Product *Item
}
