package entity

import (
	"strings"

	"MergeIsland/modules/kit/errx"
)

// ProductionPolicy 决定生成器是手动点击生产还是按冷却自动生产。
type ProductionPolicy int

const (
	// ClickProduction 点击即生产，成功后不进入冷却。
	ClickProduction ProductionPolicy = iota
	// TimedProduction 由 Tick 驱动，每次成功后冷却 production_time 秒；冷却中点击返回 NotReady。
	TimedProduction
)

func (p ProductionPolicy) String() string {
	if p == TimedProduction {
		return "timed"
	}
	return "click"
}

func ParsePolicy(s string) (ProductionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "click":
		return ClickProduction, nil
	case "timed":
		return TimedProduction, nil
	default:
		return ClickProduction, errx.ErrReqParamERR.WithData("production_policy", s)
	}
}
