package item

import (
	"MergeIsland/internal/shared/config"
)

type productionConf struct {
	ItemID string  `json:"item_id" mapstructure:"item_id"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

type itemConf struct {
	ItemID         string           `json:"item_id" mapstructure:"item_id"`
	Family         string           `json:"family" mapstructure:"family"`
	Level          int              `json:"level" mapstructure:"level"`
	Generator      bool             `json:"generator" mapstructure:"generator"`
	ProductionTime float64          `json:"production_time" mapstructure:"production_time"`
	Production     []productionConf `json:"production" mapstructure:"production"`
}

type catalogConf struct {
	Title string     `json:"title" mapstructure:"title"`
	Items []itemConf `json:"items" mapstructure:"items"`
}

// Load 读取物品表文件（yml/json），返回不可变 Catalog 与配置警告。
func Load(path string) (*Catalog, []Warning, error) {
	resolved, err := config.Resolve(path)
	if err != nil {
		return nil, nil, err
	}
	var conf catalogConf
	if err := config.LoadFile(resolved, &conf); err != nil {
		return nil, nil, err
	}
	specs := make([]Spec, 0, len(conf.Items))
	for _, it := range conf.Items {
		s := Spec{
			ItemID:         it.ItemID,
			FamilyID:       it.Family,
			Level:          it.Level,
			IsGenerator:    it.Generator,
			ProductionTime: it.ProductionTime,
		}
		for _, p := range it.Production {
			s.Production = append(s.Production, ProductionEntry{ItemID: p.ItemID, Weight: p.Weight})
		}
		specs = append(specs, s)
	}
	return New(conf.Title, specs)
}
