package entity

import (
	"math/rand/v2"
	"time"
)

// Roller 是棋盘的随机源，测试中替换为固定序列。
type Roller interface {
	// Percent 返回 [0,100) 内的均匀随机数。
	Percent() float64
	// IntN 返回 [0,n) 内的均匀随机整数。
	IntN(n int) int
}

type pcgRoller struct {
	r *rand.Rand
}

// NewRoller seed 为 0 时按当前时间取种子。
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &pcgRoller{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (p *pcgRoller) Percent() float64 {
	return p.r.Float64() * 100
}

func (p *pcgRoller) IntN(n int) int {
	return p.r.IntN(n)
}
