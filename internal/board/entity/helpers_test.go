package entity

import (
	"testing"
	"time"

	"MergeIsland/internal/shared/gameconfig/item"
)

// fixedRoller 总是返回同一个格子下标和同一个百分比。
type fixedRoller struct {
	idx int
	pct float64
}

func (f *fixedRoller) Percent() float64 { return f.pct }

func (f *fixedRoller) IntN(n int) int {
	if f.idx >= n {
		return n - 1
	}
	return f.idx
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testCatalog(t *testing.T) *item.Catalog {
	t.Helper()
	specs := []item.Spec{
		{ItemID: "wood_1", FamilyID: "wood", Level: 1},
		{ItemID: "wood_2", FamilyID: "wood", Level: 2},
		{ItemID: "wood_3", FamilyID: "wood", Level: 3},
		{ItemID: "stone_1", FamilyID: "stone", Level: 1},
		{ItemID: "stone_2", FamilyID: "stone", Level: 2},
		{ItemID: "gen_1", FamilyID: "gen", Level: 1, IsGenerator: true, ProductionTime: 2,
			Production: []item.ProductionEntry{{ItemID: "wood_1", Weight: 40}, {ItemID: "stone_1", Weight: 35}, {ItemID: "wood_2", Weight: 25}}},
		{ItemID: "half_1", FamilyID: "half", Level: 1, IsGenerator: true,
			Production: []item.ProductionEntry{{ItemID: "wood_1", Weight: 50}}},
		{ItemID: "ghost_1", FamilyID: "ghost", Level: 1, IsGenerator: true,
			Production: []item.ProductionEntry{{ItemID: "phantom_1", Weight: 100}}},
	}
	c, _, err := item.New("test", specs)
	if err != nil {
		t.Fatalf("item.New err=%v", err)
	}
	return c
}

func newTestBoard(t *testing.T, size int, opts Options) *Board {
	t.Helper()
	if opts.Roller == nil {
		opts.Roller = &fixedRoller{}
	}
	b, err := NewBoard("b1", size, testCatalog(t), opts)
	if err != nil {
		t.Fatalf("NewBoard err=%v", err)
	}
	return b
}

func mustCreate(t *testing.T, b *Board, itemID string, row, col int) *Item {
	t.Helper()
	it, err := b.CreateItemByID(itemID, row, col)
	if err != nil {
		t.Fatalf("CreateItemByID(%s,%d,%d) err=%v", itemID, row, col, err)
	}
	return it
}

func cellPtr(row, col int) *Cell {
	return &Cell{Row: row, Col: col}
}

// assertBijection 检查格子与活跃集合一一对应。
func assertBijection(t *testing.T, b *Board) {
	t.Helper()
	occupied := 0
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			it := b.ItemAt(r, c)
			if it == nil {
				continue
			}
			occupied++
			cell, placed := it.Cell()
			if !placed || cell != (Cell{Row: r, Col: c}) {
				t.Fatalf("格子 (%d,%d) 的占用者回指 %v placed=%v", r, c, cell, placed)
			}
		}
	}
	if occupied != b.Count() {
		t.Fatalf("非空格子 %d 个，活跃物品 %d 个", occupied, b.Count())
	}
	seen := map[*Item]bool{}
	for _, it := range b.ActiveItems() {
		if seen[it] {
			t.Fatalf("活跃集合里重复出现 seq=%d", it.Seq())
		}
		seen[it] = true
		cell, _ := it.Cell()
		if b.ItemAt(cell.Row, cell.Col) != it {
			t.Fatalf("活跃物品 seq=%d 不在它回指的格子上", it.Seq())
		}
	}
}
