package interfaces

import (
	"MergeIsland/internal/board/interfaces/handler"
	boardhttp "MergeIsland/internal/board/interfaces/handler/http"
	boardws "MergeIsland/internal/board/interfaces/handler/ws"
	"MergeIsland/internal/shared/security"
	transporthttp "MergeIsland/internal/shared/transport/http"
	"MergeIsland/internal/shared/transport/ws"

	"github.com/gin-gonic/gin"
)

type Module struct {
	board       *handler.Board
	wsHandler   *boardws.WsHandler
	httpHandler *boardhttp.HttpHandler
}

func New(svc handler.BoardService, signer *security.Signer, opts handler.Options) *Module {
	b := handler.NewBoard(svc, signer, opts)
	return &Module{
		board:       b,
		wsHandler:   boardws.NewWsHandler(b),
		httpHandler: boardhttp.NewHttpHandler(b),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

// Authenticator 用于 WS 升级前鉴权。
func (m *Module) Authenticator() ws.Authenticator {
	return m.board.Authenticate
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
