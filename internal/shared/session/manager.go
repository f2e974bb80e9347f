package session

import (
	"sync"

	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/internal/shared/transport/ws"
)

const (
	// PushBoardEvents 下发棋盘事件。
	PushBoardEvents = "board.events"
	// PushKicked 通知旧连接被同一棋盘的新连接顶掉。
	PushKicked = "board.kicked"
)

// Manager 维护 board_id 与连接的一对一绑定。
type Manager struct {
	mu         sync.RWMutex
	board2conn map[string]ws.WSConn
	conn2board map[ws.WSConn]string
}

func NewManager() *Manager {
	return &Manager{
		board2conn: make(map[string]ws.WSConn),
		conn2board: make(map[ws.WSConn]string),
	}
}

// Bind 绑定后连接关闭会自动解绑；同一棋盘的旧连接会被踢下线。
func (m *Manager) Bind(boardID string, conn ws.WSConn) {
	if conn == nil || boardID == "" {
		return
	}
	m.mu.Lock()
	if prev, ok := m.conn2board[conn]; ok && prev != boardID {
		delete(m.board2conn, prev)
	}
	_, watched := m.conn2board[conn]
	old := m.board2conn[boardID]
	m.board2conn[boardID] = conn
	m.conn2board[conn] = boardID
	m.mu.Unlock()

	if old != nil && old != conn {
		old.Push(PushKicked, nil)
		old.Close()
	}
	if !watched {
		go func() {
			<-conn.Done()
			m.UnbindConn(conn)
		}()
	}
}

// OnOpen 按连接上的 board_id 绑定，用作 ws.WithOnOpen 回调。
func (m *Manager) OnOpen(conn ws.WSConn) {
	if id, ok := ws.BoardIDOf(conn); ok {
		m.Bind(id, conn)
	}
}

func (m *Manager) UnbindConn(conn ws.WSConn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.conn2board[conn]
	if !ok {
		return
	}
	delete(m.conn2board, conn)
	if m.board2conn[id] == conn {
		delete(m.board2conn, id)
	}
}

func (m *Manager) Conn(boardID string) (ws.WSConn, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, ok := m.board2conn[boardID]
	return conn, ok
}

func (m *Manager) BoardID(conn ws.WSConn) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.conn2board[conn]
	return id, ok
}

// Notify 把棋盘事件推给在线连接，不在线时丢弃。
func (m *Manager) Notify(boardID string, events []messages.EventRecord) {
	if len(events) == 0 {
		return
	}
	if conn, ok := m.Conn(boardID); ok {
		conn.Push(PushBoardEvents, events)
	}
}
