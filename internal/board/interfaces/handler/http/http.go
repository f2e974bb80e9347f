package http

import (
	"context"
	nethttp "net/http"
	"strconv"

	"MergeIsland/internal/board/interfaces/handler"
	"MergeIsland/internal/shared/transport"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ctxKeyBoardID = "board_id"

type HttpHandler struct {
	board *handler.Board
}

func NewHttpHandler(b *handler.Board) *HttpHandler {
	return &HttpHandler{board: b}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	boards := group.Group("/boards")
	if h.board.Dev {
		boards.POST("/dev/token", h.DevToken)
	}

	me := boards.Group("/me", h.auth)
	me.GET("", h.GetBoard)
	me.GET("/items/:row/:col", h.ItemAt)
	me.POST("/drop", h.Drop)
	me.POST("/produce", h.Produce)
	if h.board.Dev {
		me.POST("/items", h.CreateItem)
	}
}

func (h *HttpHandler) auth(c *gin.Context) {
	id, err := h.board.Authenticate(c.Request)
	if err != nil {
		transport.SetErrorReason(c.Request.Context(), err.Error())
		h.fail(c, transport.Unauthorized, "token 无效")
		c.Abort()
		return
	}
	c.Set(ctxKeyBoardID, id)
	c.Next()
}

func (h *HttpHandler) GetBoard(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.GetString(ctxKeyBoardID)
	state, err := h.board.Service.GetBoard(ctx, id)
	if err != nil {
		h.error(ctx, c, "board.get", id, err)
		return
	}
	h.ok(c, state)
}

func (h *HttpHandler) ItemAt(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.GetString(ctxKeyBoardID)
	row, errRow := strconv.Atoi(c.Param("row"))
	col, errCol := strconv.Atoi(c.Param("col"))
	if errRow != nil || errCol != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	it, err := h.board.Service.ItemAt(ctx, id, handler.CellReq{Row: row, Col: col}.Ref())
	if err != nil {
		h.error(ctx, c, "board.item", id, err)
		return
	}
	h.ok(c, handler.ItemAtResp{Item: it})
}

func (h *HttpHandler) Drop(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.GetString(ctxKeyBoardID)
	var req handler.DropReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.Drop(ctx, id, req.From, req.To)
	if err != nil {
		h.error(ctx, c, "board.drop", id, err)
		return
	}
	h.ok(c, res)
}

func (h *HttpHandler) Produce(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.GetString(ctxKeyBoardID)
	var req handler.CellReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.Produce(ctx, id, req.Ref())
	if err != nil {
		h.error(ctx, c, "board.produce", id, err)
		return
	}
	h.ok(c, res)
}

func (h *HttpHandler) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.GetString(ctxKeyBoardID)
	var req handler.CreateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.board.Service.CreateItem(ctx, id, req.ItemID, handler.CellReq{Row: req.Row, Col: req.Col}.Ref())
	if err != nil {
		h.error(ctx, c, "board.create", id, err)
		return
	}
	h.ok(c, res)
}

// DevToken 签发调试 token，body 为空时分配新棋盘。
func (h *HttpHandler) DevToken(c *gin.Context) {
	var req handler.TokenReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
	}
	res, err := h.board.IssueToken(req.BoardID)
	if err != nil {
		h.error(c.Request.Context(), c, "board.dev_token", req.BoardID, err)
		return
	}
	h.ok(c, res)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, transport.Response{Code: transport.OK, Msg: "ok", Data: data})
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, transport.Response{Code: code, Msg: msg})
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action, boardID string, err error) {
	code, msg := h.board.HandleError(ctx, action, err, zap.String("board_id", boardID))
	h.fail(c, code, msg)
}
