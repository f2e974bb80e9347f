package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"MergeIsland/internal/shared/actor/messages"
	"MergeIsland/internal/shared/security"
	"MergeIsland/internal/shared/utils"
	"MergeIsland/modules/kit/logx"
)

// BoardService 是接口层需要的棋盘意图，由 actor.Runtime 实现。
type BoardService interface {
	GetBoard(ctx context.Context, boardID string) (messages.BoardState, error)
	ItemAt(ctx context.Context, boardID string, at messages.CellRef) (*messages.ItemState, error)
	Drop(ctx context.Context, boardID string, from messages.CellRef, to *messages.CellRef) (*messages.BHDrop, error)
	Produce(ctx context.Context, boardID string, at messages.CellRef) (*messages.BHProduce, error)
	CreateItem(ctx context.Context, boardID, itemID string, at messages.CellRef) (*messages.BHCreateItem, error)
}

var ErrNoToken = errors.New("missing token")

type Options struct {
	// Dev 打开后额外注册放置物品和签发 token 的调试接口。
	Dev    bool
	IDs    *utils.IDGen
	Logger logx.Logger
}

// Board 是 HTTP 与 WS 共用的依赖。
type Board struct {
	Service BoardService
	Signer  *security.Signer
	Dev     bool
	IDs     *utils.IDGen
	Log     logx.Logger
}

func NewBoard(svc BoardService, signer *security.Signer, opts Options) *Board {
	l := opts.Logger
	if l == nil {
		l = logx.Nop()
	}
	return &Board{
		Service: svc,
		Signer:  signer,
		Dev:     opts.Dev,
		IDs:     opts.IDs,
		Log:     l,
	}
}

// Authenticate 从 Authorization: Bearer 或 ?token= 取 token，返回 board_id。
func (b *Board) Authenticate(r *http.Request) (string, error) {
	token := BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	return b.ParseToken(token)
}

func (b *Board) ParseToken(token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	if b.Signer == nil {
		return "", security.ErrJWTSecretMissing
	}
	claims, err := b.Signer.ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.BoardID, nil
}

// IssueToken 为 boardID 签发 token；boardID 为空时生成新 id。
func (b *Board) IssueToken(boardID string) (TokenResp, error) {
	if boardID == "" {
		if b.IDs == nil {
			return TokenResp{}, errors.New("id generator is nil")
		}
		boardID = b.IDs.NextString()
	}
	if b.Signer == nil {
		return TokenResp{}, security.ErrJWTSecretMissing
	}
	token, err := b.Signer.Award(boardID)
	if err != nil {
		return TokenResp{}, err
	}
	return TokenResp{BoardID: boardID, Token: token}, nil
}

func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
