package utils

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	// 2026-01-01 00:00:00 UTC，毫秒
	idEpochMilli int64 = 1767225600000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)
)

// IDGen 是雪花 id 生成器，dev 环境签发新棋盘 id 时使用。
type IDGen struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() time.Time
}

func NewIDGen(nodeID int64) (*IDGen, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("id node out of range [0,%d]: %d", maxNodeID, nodeID)
	}
	return &IDGen{nodeID: nodeID, now: time.Now}, nil
}

func (g *IDGen) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UnixMilli()
	if ts < g.lastTS {
		// 时钟回拨时沿用上一毫秒。
		ts = g.lastTS
	}
	if ts == g.lastTS {
		g.seq = (g.seq + 1) & maxSeq
		if g.seq == 0 {
			for ts <= g.lastTS {
				ts = g.now().UnixMilli()
			}
		}
	} else {
		g.seq = 0
	}
	g.lastTS = ts
	return (ts-idEpochMilli)<<(nodeBits+seqBits) | g.nodeID<<seqBits | g.seq
}

// NextString 以十进制字符串返回，可直接作为 board id。
func (g *IDGen) NextString() string {
	return strconv.FormatInt(g.Next(), 10)
}
