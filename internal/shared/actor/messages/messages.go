// Package messages 是 transport 与棋盘 actor 之间的消息契约，只含值类型，可以安全跨 goroutine 传递。
package messages

// FailResp 是 actor 的失败回复，Err 保留原始错误以便接口层按错误码映射。
type FailResp struct {
	Err error
}

type BoardMessage interface {
	BoardID() string
}

type BoardBaseMessage struct {
	Board string
}

func (m BoardBaseMessage) BoardID() string {
	return m.Board
}

type CellRef struct {
	Row int `json:"row" mapstructure:"row"`
	Col int `json:"col" mapstructure:"col"`
}

type ItemState struct {
	Seq       uint64 `json:"seq"`
	ItemID    string `json:"item_id"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Generator bool   `json:"generator"`
	Ready     bool   `json:"ready"`
}

// EventRecord 是一条棋盘事件，Data 为对应事件结构体。
type EventRecord struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

type BoardState struct {
	BoardID string      `json:"board_id"`
	Size    int         `json:"size"`
	Policy  string      `json:"policy"`
	Count   int         `json:"count"`
	Items   []ItemState `json:"items"`
}
