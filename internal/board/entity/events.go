package entity

type EventKind string

const (
	EventItemCreated       EventKind = "item_created"
	EventItemRemoved       EventKind = "item_removed"
	EventItemMoved         EventKind = "item_moved"
	EventMergeResolved     EventKind = "merge_resolved"
	EventProductionOutcome EventKind = "production_outcome"
)

// Event 是棋盘状态变化通知，在一次操作完成且状态一致之后按发生顺序投递。
type Event interface {
	Kind() EventKind
}

type ItemCreated struct {
	Item ItemView `json:"item"`
	Cell Cell     `json:"cell"`
}

// ItemRemoved.Item 保留被移除前所在的格子。
type ItemRemoved struct {
	Item ItemView `json:"item"`
}

type ItemMoved struct {
	Item ItemView `json:"item"`
	From Cell     `json:"from"`
	To   Cell     `json:"to"`
}

type MergeResolved struct {
	ConsumedA ItemView `json:"consumed_a"`
	ConsumedB ItemView `json:"consumed_b"`
	Created   ItemView `json:"created"`
}

// ProductionResolved 对应一次生产尝试的结果，无论成功与否都会发出。
type ProductionResolved struct {
	Generator ItemView          `json:"generator"`
	Outcome   ProductionOutcome `json:"outcome"`
	Product   *ItemView         `json:"product,omitempty"`
}

func (ItemCreated) Kind() EventKind        { return EventItemCreated }
func (ItemRemoved) Kind() EventKind        { return EventItemRemoved }
func (ItemMoved) Kind() EventKind          { return EventItemMoved }
func (MergeResolved) Kind() EventKind      { return EventMergeResolved }
func (ProductionResolved) Kind() EventKind { return EventProductionOutcome }

// EventSink 接收一次操作产生的全部事件。投递期间棋盘仍处于操作中，回调里再发起操作会被拒绝。
type EventSink interface {
	OnBoardEvents(events []Event)
}

// SinkFunc 让普通函数实现 EventSink。
type SinkFunc func(events []Event)

func (f SinkFunc) OnBoardEvents(events []Event) {
	f(events)
}
