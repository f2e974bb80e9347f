package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"MergeIsland/internal/shared/security"
	"MergeIsland/internal/shared/utils"
	"MergeIsland/modules/kit/logx"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	outQueueSize = 256
	writeTimeout = 10 * time.Second
	secretKeyLen = 16
)

// WsServer 是一条连接：上行报文 gzip(aes-cbc(json))，下行同样处理；握手报文只压缩不加密。
type WsServer struct {
	conn    *websocket.Conn
	router  *Router
	outChan chan *WsMsgResp
	log     logx.Logger

	propMu   sync.RWMutex
	property map[string]any

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger) *WsServer {
	if l == nil {
		l = logx.Nop()
	}
	return &WsServer{
		conn:     wsConn,
		outChan:  make(chan *WsMsgResp, outQueueSize),
		property: make(map[string]any),
		done:     make(chan struct{}),
		log:      l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.propMu.Lock()
	defer s.propMu.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.propMu.RLock()
	defer s.propMu.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.propMu.Lock()
	defer s.propMu.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Push(name string, data any) {
	s.send(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) send(msg *WsMsgResp) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.outChan <- msg:
	case <-s.done:
	default:
		s.log.Warn("ws_server out queue full, drop msg", zap.String("name", msg.Body.Name), zap.String("remote", s.Addr()))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("ws_server read msg", zap.Error(err))
			}
			return
		}
		reqBody, ok := s.decode(data)
		if !ok {
			continue
		}

		req := WsMsgReq{Body: reqBody, Conn: s}
		// resp 的 seq 与 req 一致，客户端按 seq 匹配应答。
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else if s.router != nil {
			s.log.Debug("ws_server read msg", zap.String("name", reqBody.Name), zap.Int64("seq", reqBody.Seq))
			s.router.Dispatch(&req, &resp)
		}
		s.send(&resp)
	}
}

// decode 依次解压、解密、解析 json；解密失败时重新握手。
func (s *WsServer) decode(data []byte) (*ReqBody, bool) {
	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Warn("ws_server unzip", zap.Error(err))
		return nil, false
	}
	key, ok := s.GetProperty(SecretKey).(string)
	if !ok {
		s.log.Warn("ws_server secretKey not found")
		return nil, false
	}
	plain, err := security.AesCBCDecrypt(secretData, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Warn("ws_server decrypt", zap.Error(err))
		s.handshake()
		return nil, false
	}
	body := &ReqBody{}
	if err := json.Unmarshal(plain, body); err != nil {
		s.log.Warn("ws_server unmarshal", zap.Error(err))
		return nil, false
	}
	return body, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	raw, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server marshal", zap.Error(err), zap.String("name", msg.Body.Name))
		return
	}
	key, ok := s.GetProperty(SecretKey).(string)
	if !ok {
		s.log.Error("ws_server secretKey not found", zap.String("name", msg.Body.Name))
		return
	}
	encrypted, err := security.AesCBCEncrypt(raw, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server encrypt", zap.Error(err))
		return
	}
	s.writeZipped(encrypted)
}

func (s *WsServer) handshake() {
	key, ok := s.GetProperty(SecretKey).(string)
	if !ok {
		key = utils.RandSeq(secretKeyLen)
		s.SetProperty(SecretKey, key)
	}
	raw, err := json.Marshal(&RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: key}})
	if err != nil {
		s.log.Error("ws_server handshake marshal", zap.Error(err))
		return
	}
	s.writeZipped(raw)
}

// writeZipped 压缩后按 BinaryMessage 写出；gorilla 的连接不允许并发写。
func (s *WsServer) writeZipped(data []byte) {
	zipped, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server zip", zap.Error(err))
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.log.Warn("ws_server write", zap.Error(err))
	}
}
