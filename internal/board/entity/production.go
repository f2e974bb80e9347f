package entity

import (
	"math"

	"MergeIsland/internal/shared/gameconfig/item"
)

// DetermineProduct 按声明顺序累加权重，返回第一个累计权重 >= r 的条目。
// r 不在 [0,100) 内、或累计权重始终小于 r 时返回 false（NoProductSelected）。
// 权重为 0 的条目永远不会被选中。
func DetermineProduct(def *item.Definition, r float64) (item.ProductionEntry, bool) {
	if def == nil || math.IsNaN(r) || r < 0 || r >= 100 {
		return item.ProductionEntry{}, false
	}
	var cumulative float64
	for _, e := range def.Production() {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if cumulative >= r {
			return e, true
		}
	}
	return item.ProductionEntry{}, false
}
