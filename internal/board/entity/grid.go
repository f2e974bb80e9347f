package entity

// Cell 是棋盘坐标，行列从 0 开始。
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// neighbourhood 是 8 邻域偏移，按行优先顺序排列，保证候选格子顺序稳定。
var neighbourhood = [...]Cell{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid 是 size*size 的格子数组；格子持有占用者，物品只回指格子。
type Grid struct {
	size  int
	cells []*Item
}

func NewGrid(size int) *Grid {
	return &Grid{size: size, cells: make([]*Item, size*size)}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) IsValid(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// IsEmpty 对越界格子返回 false。
func (g *Grid) IsEmpty(row, col int) bool {
	return g.IsValid(row, col) && g.cells[row*g.size+col] == nil
}

func (g *Grid) At(row, col int) *Item {
	if !g.IsValid(row, col) {
		return nil
	}
	return g.cells[row*g.size+col]
}

func (g *Grid) put(c Cell, it *Item) {
	g.cells[c.Row*g.size+c.Col] = it
}

func (g *Grid) clear(c Cell) {
	g.cells[c.Row*g.size+c.Col] = nil
}

// AdjacentEmptyCells 返回 8 邻域内合法且为空的格子。
func (g *Grid) AdjacentEmptyCells(c Cell) []Cell {
	var out []Cell
	for _, d := range neighbourhood {
		r, col := c.Row+d.Row, c.Col+d.Col
		if g.IsEmpty(r, col) {
			out = append(out, Cell{Row: r, Col: col})
		}
	}
	return out
}

// HasAnyEmptyCell 全盘扫描，生产前先用它短路。
func (g *Grid) HasAnyEmptyCell() bool {
	for _, it := range g.cells {
		if it == nil {
			return true
		}
	}
	return false
}

// PickRandomEmpty 在候选格子中均匀随机选一个；候选为空时返回 false。
func PickRandomEmpty(cells []Cell, r Roller) (Cell, bool) {
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[r.IntN(len(cells))], true
}
