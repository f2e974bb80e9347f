package ws

import (
	"context"

	"MergeIsland/internal/board/interfaces/handler"
	"MergeIsland/internal/shared/transport"
	"MergeIsland/internal/shared/transport/ws"

	"go.uber.org/zap"
)

type WsHandler struct {
	board *handler.Board
}

func NewWsHandler(b *handler.Board) *WsHandler {
	return &WsHandler{board: b}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("board")
	g.Use(h.requireBoard)
	g.Handle("get", h.GetBoard)
	g.Handle("item", h.ItemAt)
	g.Handle("drop", h.Drop)
	g.Handle("produce", h.Produce)
	if h.board.Dev {
		g.Handle("create", h.CreateItem)
	}
}

// requireBoard 拒绝未绑定 board_id 的连接。
func (h *WsHandler) requireBoard(next ws.HandlerFunc) ws.HandlerFunc {
	return func(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
		if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
			h.fail(resp, transport.InvalidParam, "参数有误")
			return
		}
		if _, ok := ws.BoardIDOf(req.Conn); !ok {
			h.fail(resp, transport.Unauthorized, "连接未绑定棋盘")
			return
		}
		next(ctx, req, resp)
	}
}

func (h *WsHandler) GetBoard(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, _ := ws.BoardIDOf(req.Conn)
	state, err := h.board.Service.GetBoard(ctx, id)
	if err != nil {
		h.error(ctx, resp, "board.get", id, err)
		return
	}
	h.ok(resp, state)
}

func (h *WsHandler) ItemAt(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, _ := ws.BoardIDOf(req.Conn)
	var in handler.CellReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	it, err := h.board.Service.ItemAt(ctx, id, in.Ref())
	if err != nil {
		h.error(ctx, resp, "board.item", id, err)
		return
	}
	h.ok(resp, handler.ItemAtResp{Item: it})
}

func (h *WsHandler) Drop(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, _ := ws.BoardIDOf(req.Conn)
	var in handler.DropReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.Drop(ctx, id, in.From, in.To)
	if err != nil {
		h.error(ctx, resp, "board.drop", id, err)
		return
	}
	h.ok(resp, res)
}

func (h *WsHandler) Produce(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, _ := ws.BoardIDOf(req.Conn)
	var in handler.CellReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.Produce(ctx, id, in.Ref())
	if err != nil {
		h.error(ctx, resp, "board.produce", id, err)
		return
	}
	h.ok(resp, res)
}

func (h *WsHandler) CreateItem(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, _ := ws.BoardIDOf(req.Conn)
	var in handler.CreateItemReq
	if err := ws.BindJSON(req, &in); err != nil || in.ItemID == "" {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.CreateItem(ctx, id, in.ItemID, handler.CellReq{Row: in.Row, Col: in.Col}.Ref())
	if err != nil {
		h.error(ctx, resp, "board.create", id, err)
		return
	}
	h.ok(resp, res)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action, boardID string, err error) {
	code, msg := h.board.HandleError(ctx, action, err, zap.String("board_id", boardID))
	h.fail(resp, code, msg)
}
