package ws

import (
	"net/http"

	"MergeIsland/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator 在升级前校验请求并返回 board_id。
type Authenticator func(r *http.Request) (string, error)

type Option func(*Server)

func WithAuth(fn Authenticator) Option {
	return func(s *Server) { s.auth = fn }
}

// WithOnOpen 在连接握手后回调，用于绑定会话。
func WithOnOpen(fn func(conn WSConn)) Option {
	return func(s *Server) { s.onOpen = fn }
}

type Server struct {
	router   *Router
	log      logx.Logger
	auth     Authenticator
	onOpen   func(conn WSConn)
	upgrader websocket.Upgrader
}

func NewServer(r *Router, l logx.Logger, opts ...Option) *Server {
	if l == nil {
		l = logx.Nop()
	}
	s := &Server{
		router: r,
		log:    l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var boardID string
	if s.auth != nil {
		id, err := s.auth(req)
		if err != nil {
			s.log.Warn("websocket auth failed", zap.Error(err), zap.String("remote", req.RemoteAddr))
			http.Error(resp, "unauthorized", http.StatusUnauthorized)
			return
		}
		boardID = id
	}

	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	conn := NewWsServer(wsConn, s.log)
	if boardID != "" {
		conn.SetProperty(ConnKeyBoard, boardID)
	}
	conn.Router(s.router)
	conn.handshake()
	conn.Run()
	s.log.Info("websocket open", zap.String("remote", conn.Addr()), zap.String("board_id", boardID))
	if s.onOpen != nil {
		s.onOpen(conn)
	}
}
