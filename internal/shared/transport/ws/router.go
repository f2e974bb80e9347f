package ws

import (
	"context"
	"strings"

	"MergeIsland/internal/shared/logs"
	"MergeIsland/internal/shared/transport"
	"MergeIsland/modules/kit/logx"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Middleware 包在组内每个 handler 外层，按 Use 的顺序由外到内执行。
type Middleware func(next HandlerFunc) HandlerFunc

type Group struct {
	prefix   string
	mws      []Middleware
	handlers map[string]HandlerFunc
}

func (g *Group) Use(mws ...Middleware) {
	g.mws = append(g.mws, mws...)
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.handlers[name] = h
}

func (g *Group) wrap(h HandlerFunc) HandlerFunc {
	for i := len(g.mws) - 1; i >= 0; i-- {
		h = g.mws[i](h)
	}
	return h
}

type Router struct {
	groups map[string]*Group
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{
		groups: make(map[string]*Group),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	group := r.groups[prefix]
	if group == nil {
		group = &Group{
			prefix:   prefix,
			handlers: make(map[string]HandlerFunc),
		}
		r.groups[prefix] = group
	}
	return group
}

// Dispatch 按 req.Body.Name 路由，格式为 组.处理器，例如 board.drop。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	defer r.writeAccessLog(ctx, resp)

	if resp == nil || resp.Body == nil {
		return
	}
	// handler 漏设 code 时按系统错误返回。
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil

	if req == nil || req.Body == nil {
		setError(resp, transport.InvalidParam, "参数有误")
		return
	}
	prefix, name, ok := parseRouteName(req.Body.Name)
	if !ok {
		setError(resp, transport.InvalidParam, "路由参数有误")
		return
	}
	group := r.groups[prefix]
	if group == nil {
		setError(resp, transport.NotFound, "路由组不存在")
		return
	}
	h := group.handlers[name]
	if h == nil {
		setError(resp, transport.NotFound, "路由处理器不存在")
		return
	}
	group.wrap(h)(ctx, req, resp)
}

func parseRouteName(name string) (string, string, bool) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return prefix, handler, true
}

func setError(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	bizCode := transport.SystemError
	if resp != nil && resp.Body != nil {
		bizCode = resp.Body.Code
	}
	transport.SetBizCode(ctx, transport.BizCode(bizCode))
	transport.WriteAccessLog(ctx, r.log)
}
