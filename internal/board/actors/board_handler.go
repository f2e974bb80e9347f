package actors

import (
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/actor/messages"

	"github.com/asynkron/protoactor-go/actor"
)

type BoardHandler struct{}

// 全局实例
var BH = &BoardHandler{}

func (h *BoardHandler) HandleGetBoard(ctx actor.Context, p *BoardActor, req messages.HBGetBoard) {
	ctx.Respond(&messages.BHGetBoard{Board: toBoardState(p.board)})
}

func (h *BoardHandler) HandleItemAt(ctx actor.Context, p *BoardActor, req messages.HBItemAt) {
	if !p.board.Grid().IsValid(req.At.Row, req.At.Col) {
		ctx.Respond(fail(entity.ErrCellOutOfRange.WithData("row", req.At.Row).WithData("col", req.At.Col)))
		return
	}
	ctx.Respond(&messages.BHItemAt{Item: itemStatePtr(p.board.ItemAt(req.At.Row, req.At.Col))})
}

func (h *BoardHandler) HandleDrop(ctx actor.Context, p *BoardActor, req messages.HBDrop) {
	dragged := p.board.ItemAt(req.From.Row, req.From.Col)
	if dragged == nil {
		ctx.Respond(fail(entity.ErrItemNotFound.WithData("row", req.From.Row).WithData("col", req.From.Col)))
		return
	}
	var target *entity.Cell
	if req.To != nil {
		c := toCell(*req.To)
		target = &c
	}
	res, err := p.board.HandleDrop(dragged, target)
	events := p.drainOutbox()
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&messages.BHDrop{
		Outcome: res.Outcome.String(),
		Item:    itemStatePtr(res.Item),
		Events:  events,
	})
}

func (h *BoardHandler) HandleProduce(ctx actor.Context, p *BoardActor, req messages.HBProduce) {
	gen := p.board.ItemAt(req.At.Row, req.At.Col)
	if gen == nil {
		ctx.Respond(fail(entity.ErrItemNotFound.WithData("row", req.At.Row).WithData("col", req.At.Col)))
		return
	}
	res, err := p.board.AttemptProduction(gen)
	events := p.drainOutbox()
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&messages.BHProduce{
		Outcome: res.Outcome.String(),
		Product: itemStatePtr(res.Product),
		Events:  events,
	})
}

func (h *BoardHandler) HandleCreateItem(ctx actor.Context, p *BoardActor, req messages.HBCreateItem) {
	it, err := p.board.CreateItemByID(req.ItemID, req.At.Row, req.At.Col)
	events := p.drainOutbox()
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&messages.BHCreateItem{Item: toItemState(it.View()), Events: events})
}
