package entity

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"MergeIsland/internal/shared/gameconfig/item"
)

// BoardID 是棋盘归属标识，等于玩家 uid。
type BoardID string

type Options struct {
	Policy ProductionPolicy
	// Roller 为空时使用按时间取种子的 PCG。
	Roller Roller
	// Now 为空时使用 time.Now。
	Now  func() time.Time
	Sink EventSink
}

// Board 是棋盘聚合：Grid + 活跃物品集合 + 全部意图操作。
// 每个意图完整执行后才返回，执行期间的重入调用返回 ErrReentrantCall。
type Board struct {
	id      BoardID
	catalog *item.Catalog
	grid    *Grid
	active  []*Item
	nextSeq ItemSeq

	policy ProductionPolicy
	roller Roller
	now    func() time.Time
	sink   EventSink

	busy    bool
	pending []Event
	dirty   bool
}

func NewBoard(id BoardID, size int, catalog *item.Catalog, opts Options) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	if catalog == nil {
		return nil, errors.New("board catalog is nil")
	}
	b := &Board{
		id:      id,
		catalog: catalog,
		grid:    NewGrid(size),
		nextSeq: 1,
		policy:  opts.Policy,
		roller:  opts.Roller,
		now:     opts.Now,
		sink:    opts.Sink,
	}
	if b.roller == nil {
		b.roller = NewRoller(0)
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b, nil
}

func (b *Board) ID() BoardID               { return b.id }
func (b *Board) Size() int                 { return b.grid.size }
func (b *Board) Grid() *Grid               { return b.grid }
func (b *Board) Catalog() *item.Catalog    { return b.catalog }
func (b *Board) Policy() ProductionPolicy  { return b.policy }
func (b *Board) SetSink(sink EventSink)    { b.sink = sink }
func (b *Board) Count() int                { return len(b.active) }
func (b *Board) ItemAt(row, col int) *Item { return b.grid.At(row, col) }

// ActiveItems 按放入顺序返回活跃物品。
func (b *Board) ActiveItems() []*Item {
	return slices.Clone(b.active)
}

// Views 按放入顺序返回全部物品的值拷贝。
func (b *Board) Views() []ItemView {
	out := make([]ItemView, 0, len(b.active))
	for _, it := range b.active {
		out = append(out, it.View())
	}
	return out
}

// FindBySeq 查找活跃物品。
func (b *Board) FindBySeq(seq ItemSeq) *Item {
	for _, it := range b.active {
		if it.seq == seq {
			return it
		}
	}
	return nil
}

func (b *Board) Dirty() bool {
	return b.dirty
}

func (b *Board) ClearDirty() {
	b.dirty = false
}

func (b *Board) begin() error {
	if b.busy {
		return ErrReentrantCall
	}
	b.busy = true
	return nil
}

// finish 投递本次操作缓冲的事件；投递结束前保持 busy。
func (b *Board) finish() {
	defer func() { b.busy = false }()
	events := b.pending
	b.pending = nil
	if b.sink != nil && len(events) > 0 {
		b.sink.OnBoardEvents(events)
	}
}

func (b *Board) emit(e Event) {
	b.pending = append(b.pending, e)
}

// CreateItem 把 def 放到空格子 c；def 必须来自本棋盘的物品表。
func (b *Board) CreateItem(def *item.Definition, c Cell) (*Item, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}
	defer b.finish()
	return b.create(def, c)
}

// CreateItemByID 是管理/加载路径：按 id 查物品表后放置。
func (b *Board) CreateItemByID(itemID string, row, col int) (*Item, error) {
	def, err := b.catalog.Lookup(itemID)
	if err != nil {
		return nil, ErrInvalidDefinition.WithData("item_id", itemID).WithCause(err)
	}
	return b.CreateItem(def, Cell{Row: row, Col: col})
}

func (b *Board) create(def *item.Definition, c Cell) (*Item, error) {
	if def == nil {
		return nil, ErrInvalidDefinition
	}
	if known, err := b.catalog.Lookup(def.ItemID()); err != nil || known != def {
		return nil, ErrInvalidDefinition.WithData("item_id", def.ItemID())
	}
	if !b.grid.IsValid(c.Row, c.Col) {
		return nil, ErrCellOutOfRange.WithData("row", c.Row).WithData("col", c.Col)
	}
	if !b.grid.IsEmpty(c.Row, c.Col) {
		return nil, ErrCellOccupied.WithData("row", c.Row).WithData("col", c.Col)
	}
	it := &Item{
		seq:    b.nextSeq,
		def:    def,
		cell:   c,
		placed: true,
		ready:  true,
	}
	b.nextSeq++
	b.grid.put(c, it)
	b.active = append(b.active, it)
	b.dirty = true
	b.emit(ItemCreated{Item: it.View(), Cell: c})
	return it, nil
}

func (b *Board) remove(it *Item) {
	b.grid.clear(it.cell)
	if i := slices.Index(b.active, it); i >= 0 {
		b.active = slices.Delete(b.active, i, i+1)
	}
	view := it.View()
	it.placed = false
	b.dirty = true
	b.emit(ItemRemoved{Item: view})
}

func (b *Board) onBoard(it *Item) bool {
	return it != nil && it.placed && b.grid.At(it.cell.Row, it.cell.Col) == it
}

// CanMerge 同族同级即可合成。
func CanMerge(a, b *Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.def.FamilyID() == b.def.FamilyID() && a.def.Level() == b.def.Level()
}

// HandleDrop 按以下优先级分派：放回原位、合成、交换、移动。
// target 为 nil 表示拖出了棋盘。
func (b *Board) HandleDrop(dragged *Item, target *Cell) (DropResult, error) {
	if err := b.begin(); err != nil {
		return DropResult{}, err
	}
	defer b.finish()

	if dragged == nil {
		return DropResult{}, ErrItemNotFound
	}
	if target == nil {
		return DropResult{}, ErrNilTarget
	}
	if !b.onBoard(dragged) {
		return DropResult{}, ErrItemNotOnBoard.WithData("seq", dragged.seq)
	}
	to := *target
	if !b.grid.IsValid(to.Row, to.Col) {
		return DropResult{}, ErrCellOutOfRange.WithData("row", to.Row).WithData("col", to.Col)
	}

	occupant := b.grid.At(to.Row, to.Col)
	switch {
	case occupant == dragged:
		return DropResult{Outcome: DropReturnedToOrigin, Item: dragged}, nil
	case occupant != nil && CanMerge(dragged, occupant):
		return b.merge(dragged, occupant, to)
	case occupant != nil:
		b.swap(dragged, occupant)
		return DropResult{Outcome: DropSwapped, Item: dragged, Other: occupant}, nil
	default:
		b.move(dragged, to)
		return DropResult{Outcome: DropMoved, Item: dragged}, nil
	}
}

// merge 在查到下一级之前不做任何修改，链顶时返回 DropMergeCapped。
func (b *Board) merge(a, o *Item, to Cell) (DropResult, error) {
	next, err := b.catalog.NextLevel(a.def)
	if err != nil {
		return DropResult{Outcome: DropMergeCapped, Item: a, Other: o}, nil
	}
	viewA, viewB := a.View(), o.View()
	b.remove(a)
	b.remove(o)
	created, err := b.create(next, to)
	if err != nil {
		// 两个格子刚被清空且 next 来自同一物品表，这里不会失败。
		return DropResult{}, err
	}
	b.emit(MergeResolved{ConsumedA: viewA, ConsumedB: viewB, Created: created.View()})
	return DropResult{Outcome: DropMerged, Item: created}, nil
}

func (b *Board) swap(a, o *Item) {
	from, to := a.cell, o.cell
	a.cell, o.cell = to, from
	b.grid.put(to, a)
	b.grid.put(from, o)
	b.dirty = true
	b.emit(ItemMoved{Item: a.View(), From: from, To: to})
	b.emit(ItemMoved{Item: o.View(), From: to, To: from})
}

func (b *Board) move(it *Item, to Cell) {
	from := it.cell
	b.grid.clear(from)
	it.cell = to
	b.grid.put(to, it)
	b.dirty = true
	b.emit(ItemMoved{Item: it.View(), From: from, To: to})
}

// AttemptProduction 是点击生成器的意图。
func (b *Board) AttemptProduction(gen *Item) (ProductionResult, error) {
	if err := b.begin(); err != nil {
		return ProductionResult{}, err
	}
	defer b.finish()

	if gen == nil {
		return ProductionResult{}, ErrItemNotFound
	}
	if !b.onBoard(gen) {
		return ProductionResult{}, ErrItemNotOnBoard.WithData("seq", gen.seq)
	}
	res := b.produce(gen, b.now())
	b.emitProduction(gen, res)
	return res, nil
}

// Tick 只在 TimedProduction 下生效：冷却结束的生成器各生产一次，返回成功的结果。
func (b *Board) Tick(now time.Time) ([]ProductionResult, error) {
	if b.policy != TimedProduction {
		return nil, nil
	}
	if err := b.begin(); err != nil {
		return nil, err
	}
	defer b.finish()

	var produced []ProductionResult
	for _, gen := range slices.Clone(b.active) {
		if !gen.def.IsGenerator() || !b.onBoard(gen) || !b.refreshReady(gen, now) {
			continue
		}
		res := b.produce(gen, now)
		if res.Outcome == Produced {
			b.emitProduction(gen, res)
			produced = append(produced, res)
		}
	}
	return produced, nil
}

func (b *Board) emitProduction(gen *Item, res ProductionResult) {
	e := ProductionResolved{Generator: gen.View(), Outcome: res.Outcome}
	if res.Product != nil {
		v := res.Product.View()
		e.Product = &v
	}
	b.emit(e)
}

// refreshReady 冷却到期时恢复 ready。
func (b *Board) refreshReady(gen *Item, now time.Time) bool {
	if !gen.ready && !now.Before(gen.readyAt) {
		gen.ready = true
		gen.readyAt = time.Time{}
	}
	return gen.ready
}

// produce 的检查顺序：整盘已满先于邻格检查；随机先选格子再抽产物。
func (b *Board) produce(gen *Item, now time.Time) ProductionResult {
	if !gen.def.IsGenerator() {
		return ProductionResult{Outcome: NotGenerator}
	}
	if b.policy == TimedProduction && !b.refreshReady(gen, now) {
		return ProductionResult{Outcome: NotReady}
	}
	if !b.grid.HasAnyEmptyCell() {
		return ProductionResult{Outcome: BoardFull}
	}
	target, ok := PickRandomEmpty(b.grid.AdjacentEmptyCells(gen.cell), b.roller)
	if !ok {
		return ProductionResult{Outcome: Blocked}
	}
	entry, ok := DetermineProduct(gen.def, b.roller.Percent())
	if !ok {
		return ProductionResult{Outcome: NoProductSelected}
	}
	def, err := b.catalog.Lookup(entry.ItemID)
	if err != nil {
		return ProductionResult{Outcome: ProductNotFound}
	}
	product, err := b.create(def, target)
	if err != nil {
		return ProductionResult{Outcome: Blocked}
	}
	if b.policy == TimedProduction {
		if cd := cooldown(gen.def); cd > 0 {
			gen.ready = false
			gen.readyAt = now.Add(cd)
		}
	}
	return ProductionResult{Outcome: Produced, Product: product}
}

func cooldown(def *item.Definition) time.Duration {
	return time.Duration(def.ProductionTime() * float64(time.Second))
}
