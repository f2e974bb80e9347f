package handler

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"MergeIsland/internal/board/actor"
	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/shared/security"
	"MergeIsland/internal/shared/transport"
	"MergeIsland/modules/kit/errx"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"nil", nil, transport.OK, ""},
		{"格子占用", entity.ErrCellOccupied.WithData("row", 1), transport.Conflict, "目标格子已被占用"},
		{"重入", entity.ErrReentrantCall, transport.Busy, "棋盘操作进行中，拒绝重入调用"},
		{"物品不存在", entity.ErrItemNotFound, transport.NotFound, "物品不存在"},
		{"越界", entity.ErrCellOutOfRange, transport.InvalidParam, "格子超出棋盘范围"},
		{"目标为空", entity.ErrNilTarget, transport.InvalidParam, "拖放目标为空"},
		{"参数错误", errx.ErrReqParamERR, transport.InvalidParam, "请求参数错误"},
		{"未就绪", app.ErrBoardNotOnline, transport.Unavailable, "棋盘未就绪"},
		{"未知业务码", errx.NewBiz("BOARD_OTHER", "其他"), transport.BizRejected, "其他"},
		{"存储不可用", app.Wrap(app.CodeUnavailable, "读取失败", errors.New("io")), transport.Unavailable, busyMsg},
		{"超时", errx.ErrTimeout, transport.Timeout, busyMsg},
		{"运行时超时", &actor.RuntimeError{Code: transport.Timeout, Message: "actor 请求超时", Cause: errx.ErrTimeout}, transport.Timeout, busyMsg},
		{"普通错误", errors.New("boom"), transport.SystemError, busyMsg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := MapError(tc.err)
			if code != tc.code || msg != tc.msg {
				t.Fatalf("MapError=(%d,%q), want (%d,%q)", code, msg, tc.code, tc.msg)
			}
		})
	}
}

func TestHandleError_记录错误原因(t *testing.T) {
	b := NewBoard(nil, nil, Options{})
	ctx := transport.NewContext("board.drop")
	code, _ := b.HandleError(ctx, "board.drop", entity.ErrCellOccupied)
	if code != transport.Conflict {
		t.Fatalf("期望 Conflict, got=%d", code)
	}
	if al := transport.FromContext(ctx); al == nil || al.ErrorReason != string(entity.CodeCellOccupied) {
		t.Fatalf("期望 error_reason=%s, got=%+v", entity.CodeCellOccupied, al)
	}

	ctx = transport.NewContext("board.get")
	b.HandleError(ctx, "board.get", app.Wrap(app.CodeUnavailable, "读取失败", errors.New("io")).WithReason(app.ReasonRepoLoadFail))
	if al := transport.FromContext(ctx); al.ErrorReason != app.ReasonRepoLoadFail.Code {
		t.Fatalf("期望 error_reason=%s, got=%q", app.ReasonRepoLoadFail.Code, al.ErrorReason)
	}
}

func TestAuthenticate_头部与查询参数(t *testing.T) {
	signer, err := security.NewSigner("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner err=%v", err)
	}
	b := NewBoard(nil, signer, Options{})
	tok, err := b.IssueToken("1001")
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	r := httptest.NewRequest("GET", "/boards/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok.Token)
	if id, err := b.Authenticate(r); err != nil || id != "1001" {
		t.Fatalf("头部鉴权失败 id=%q err=%v", id, err)
	}

	r = httptest.NewRequest("GET", "/ws?token="+tok.Token, nil)
	if id, err := b.Authenticate(r); err != nil || id != "1001" {
		t.Fatalf("查询参数鉴权失败 id=%q err=%v", id, err)
	}

	r = httptest.NewRequest("GET", "/boards/me", nil)
	if _, err := b.Authenticate(r); !errors.Is(err, ErrNoToken) {
		t.Fatalf("期望 ErrNoToken, err=%v", err)
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("bearer abc"); got != "abc" {
		t.Fatalf("期望大小写不敏感, got=%q", got)
	}
	if got := BearerToken("Basic abc"); got != "" {
		t.Fatalf("期望非 Bearer 返回空, got=%q", got)
	}
	if got := BearerToken("Bearer "); got != "" {
		t.Fatalf("期望空 token 返回空, got=%q", got)
	}
}

var _ BoardService = (*actor.Runtime)(nil)

