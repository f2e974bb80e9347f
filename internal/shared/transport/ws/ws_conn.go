package ws

type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是一条已握手的连接；属性用于挂载 board_id 等会话信息。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	// Push 主动下发；连接已关闭或发送队列已满时丢弃。
	Push(name string, data any)
	Close()
	// Done 在连接关闭时被关闭。
	Done() <-chan struct{}
}

type Handshake struct {
	Key string `json:"key"`
}

type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

const (
	HandshakeMsg = "handshake"
	HeartbeatMsg = "heartbeat"
	SecretKey    = "secretKey"
	ConnKeyBoard = "board_id"
)

// BoardIDOf 返回连接上挂载的 board_id。
func BoardIDOf(conn WSConn) (string, bool) {
	if conn == nil {
		return "", false
	}
	id, ok := conn.GetProperty(ConnKeyBoard).(string)
	return id, ok && id != ""
}
