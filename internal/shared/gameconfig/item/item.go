// Package item 是物品定义表（ItemCatalog）：进程启动时加载一次，之后只读。
package item

import (
	"fmt"
	"strconv"

	"MergeIsland/modules/kit/errx"
)

const CodeItemNotFound errx.Code = "CATALOG_ITEM_NOT_FOUND"

var ErrItemNotFound = errx.NewBiz(CodeItemNotFound, "物品定义不存在")

// ProductionEntry 是生产表的一行：产物 id + 权重（百分比）。
type ProductionEntry struct {
	ItemID string
	Weight float64
}

// Definition 是不可变的物品定义，由 Catalog 持有并共享给所有棋盘物品。
type Definition struct {
	itemID         string
	familyID       string
	level          int
	isGenerator    bool
	productionTime float64
	production     []ProductionEntry
}

func (d *Definition) ItemID() string   { return d.itemID }
func (d *Definition) FamilyID() string { return d.familyID }
func (d *Definition) Level() int       { return d.level }
func (d *Definition) IsGenerator() bool {
	return d.isGenerator
}

// ProductionTime 单位秒；点击生产模式下只用于表现层节奏，定时生产模式下是冷却时间。
func (d *Definition) ProductionTime() float64 {
	return d.productionTime
}

// Production 返回生产表的拷贝，按声明顺序。
func (d *Definition) Production() []ProductionEntry {
	out := make([]ProductionEntry, len(d.production))
	copy(out, d.production)
	return out
}

// NextLevelID 按 "{familyID}_{level}" 约定拼出下一级 id。
func NextLevelID(familyID string, level int) string {
	return familyID + "_" + strconv.Itoa(level+1)
}

// Catalog 是物品定义注册表，构造后不可修改，并发读安全。
type Catalog struct {
	title string
	defs  map[string]*Definition
	order []string
}

// Spec 是构造 Definition 的输入（配置文件解码结果或测试数据）。
type Spec struct {
	ItemID         string
	FamilyID       string
	Level          int
	IsGenerator    bool
	ProductionTime float64
	Production     []ProductionEntry
}

// Warning 是不阻止加载的配置缺陷，由调用方打印。
type Warning struct {
	ItemID  string
	Message string
}

func (w Warning) String() string {
	return w.ItemID + ": " + w.Message
}

// New 校验并构造 Catalog。
// 硬错误：id 为空/重复、family 为空、level < 1、权重为负。
// 警告：权重和不等于 100、生产表引用了不存在的物品、生成器没有生产表。
func New(title string, specs []Spec) (*Catalog, []Warning, error) {
	c := &Catalog{
		title: title,
		defs:  make(map[string]*Definition, len(specs)),
		order: make([]string, 0, len(specs)),
	}
	for _, s := range specs {
		if s.ItemID == "" {
			return nil, nil, fmt.Errorf("item catalog: empty item_id (family=%q level=%d)", s.FamilyID, s.Level)
		}
		if s.FamilyID == "" {
			return nil, nil, fmt.Errorf("item catalog: item %q has empty family", s.ItemID)
		}
		if s.Level < 1 {
			return nil, nil, fmt.Errorf("item catalog: item %q has level %d, want >= 1", s.ItemID, s.Level)
		}
		if _, exists := c.defs[s.ItemID]; exists {
			return nil, nil, fmt.Errorf("item catalog: duplicate item_id %q", s.ItemID)
		}
		for _, p := range s.Production {
			if p.Weight < 0 {
				return nil, nil, fmt.Errorf("item catalog: item %q has negative weight for %q", s.ItemID, p.ItemID)
			}
		}
		d := &Definition{
			itemID:         s.ItemID,
			familyID:       s.FamilyID,
			level:          s.Level,
			isGenerator:    s.IsGenerator,
			productionTime: s.ProductionTime,
			production:     append([]ProductionEntry(nil), s.Production...),
		}
		c.defs[d.itemID] = d
		c.order = append(c.order, d.itemID)
	}
	return c, c.validate(), nil
}

func (c *Catalog) validate() []Warning {
	var warnings []Warning
	for _, id := range c.order {
		d := c.defs[id]
		if !d.isGenerator {
			continue
		}
		if len(d.production) == 0 {
			warnings = append(warnings, Warning{ItemID: id, Message: "generator has empty production table"})
			continue
		}
		var sum float64
		for _, p := range d.production {
			sum += p.Weight
			if _, ok := c.defs[p.ItemID]; !ok {
				warnings = append(warnings, Warning{ItemID: id, Message: fmt.Sprintf("production references unknown item %q", p.ItemID)})
			}
		}
		switch {
		case sum < 100:
			warnings = append(warnings, Warning{ItemID: id, Message: fmt.Sprintf("production weights sum to %g (<100), residual rolls produce nothing", sum)})
		case sum > 100:
			warnings = append(warnings, Warning{ItemID: id, Message: fmt.Sprintf("production weights sum to %g (>100), trailing entries are unreachable", sum)})
		}
	}
	return warnings
}

func (c *Catalog) Title() string {
	return c.title
}

// Lookup 按 id 精确查找。
func (c *Catalog) Lookup(itemID string) (*Definition, error) {
	if c != nil {
		if d, ok := c.defs[itemID]; ok {
			return d, nil
		}
	}
	return nil, ErrItemNotFound.WithData("item_id", itemID)
}

// NextLevel 查找同 family 的下一级定义；到达链顶时返回 ErrItemNotFound，这是正常结果。
func (c *Catalog) NextLevel(d *Definition) (*Definition, error) {
	if d == nil {
		return nil, ErrItemNotFound
	}
	return c.Lookup(NextLevelID(d.familyID, d.level))
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Definitions 按声明顺序返回全部定义。
func (c *Catalog) Definitions() []*Definition {
	if c == nil {
		return nil
	}
	out := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}
