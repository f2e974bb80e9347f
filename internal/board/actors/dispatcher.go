package actors

import (
	"reflect"

	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, BH.HandleGetBoard)
	register(d, BH.HandleItemAt)
	register(d, BH.HandleDrop)
	register(d, BH.HandleProduce)
	register(d, BH.HandleCreateItem)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *BoardActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *BoardActor, req messages.BoardMessage) {
	if req == nil {
		ctx.Respond(fail(errx.ErrReqParamERR))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(errx.ErrReqParamERR.WithData("message", bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
