package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")
	ErrTokenNoBoard     = errors.New("token has no board id")
)

// Claims 携带棋盘归属；一个玩家对应一块棋盘。
type Claims struct {
	BoardID string `json:"bid"`
	jwt.RegisteredClaims
}

type Signer struct {
	key []byte
	ttl time.Duration
}

// NewSigner secret 为空时读环境变量 JWT_SECRET；ttl<=0 时默认 7 天。
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Signer{key: []byte(secret), ttl: ttl}, nil
}

// Award 为棋盘签发 Token。
func (s *Signer) Award(boardID string) (string, error) {
	if boardID == "" {
		return "", ErrTokenNoBoard
	}
	now := time.Now()
	claims := &Claims{
		BoardID: boardID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   boardID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ParseToken 解析并验证 Token。
func (s *Signer) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	if token == nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.BoardID == "" {
		return nil, ErrTokenNoBoard
	}
	return claims, nil
}
