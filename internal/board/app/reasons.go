package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 技术错误 reason，用于日志与排障。
	ReasonRepoLoadFail    = NewReason("BOARD_REPO_LOAD_FAIL", "棋盘存档读取失败")
	ReasonRepoSaveFail    = NewReason("BOARD_REPO_SAVE_FAIL", "棋盘存档写入失败")
	ReasonSnapshotDecode  = NewReason("BOARD_SNAPSHOT_DECODE_FAIL", "棋盘存档解析失败")
	ReasonActorNotStarted = NewReason("BOARD_ACTOR_NOT_STARTED", "棋盘 actor 启动失败")
)

var (
	// 非致命的数据问题，只记日志。
	ReasonSnapshotEntrySkipped = NewReason("BOARD_SNAPSHOT_ENTRY_SKIPPED", "存档记录已跳过")
	ReasonStartItemSkipped     = NewReason("BOARD_START_ITEM_SKIPPED", "初始物品已跳过")
)
