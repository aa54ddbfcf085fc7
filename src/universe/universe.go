package universe

import (
	"fmt"
	"strings"
)

//glyphs used by String
const (
	DeadGlyph  = '□'
	AliveGlyph = '■'
)

//Universe is the toroidal field of cells
//the field has no boundaries: the opposite edges are adjacent
//Universe is not safe for concurrent use, the owner must serialize the calls
type Universe struct {
	width  int
	height int
	cells  cells
	next   cells //the buffer for the next generation, swapped with cells on each tick
	rnd    Source
}

//New creates the Universe with width x height cells settled by the seeder
func New(width int, height int, seed Seeder, opts ...Option) *Universe {
	mustBePositive("width", width)
	mustBePositive("height", height)
	u := &Universe{
		width:  width,
		height: height,
		cells:  newCells(width * height),
		next:   newCells(width * height),
	}
	for _, o := range opts {
		o(u)
	}
	if u.rnd == nil {
		u.rnd = defaultSource()
	}
	if seed == nil {
		seed = Dead
	}
	for i := 0; i < u.cells.n; i++ {
		u.cells.set(i, seed(u, i))
	}
	return u
}

//Width returns the count of columns
func (u *Universe) Width() int {
	return u.width
}

//Height returns the count of rows
func (u *Universe) Height() int {
	return u.height
}

//Len returns the count of cells, always Width*Height
func (u *Universe) Len() int {
	return u.cells.n
}

//Cells returns the packed cells storage
//the cell with index idx is alive when cells[idx>>3] & (1 << (idx&7)) != 0
//the slice is valid until the next Tick or resize
func (u *Universe) Cells() []byte {
	return u.cells.bits
}

//GetIndex maps the row and column to the storage index
func (u *Universe) GetIndex(row int, col int) int {
	return row*u.width + col
}

//IsAlive reports whether the cell at row, col is alive
func (u *Universe) IsAlive(row int, col int) bool {
	return u.cells.get(u.GetIndex(row, col))
}

//LiveNeighborCount counts live cells around row, col wrapping at the edges
func (u *Universe) LiveNeighborCount(row int, col int) uint8 {
	var count uint8
	for _, dr := range [3]int{u.height - 1, 0, 1} {
		for _, dc := range [3]int{u.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			nr := (row + u.height + dr) % u.height
			nc := (col + u.width + dc) % u.width
			if u.cells.get(u.GetIndex(nr, nc)) {
				count++
			}
		}
	}
	return count
}

//Tick advances the universe by one generation
//the next generation is written to the second buffer which replaces the current one at the end
func (u *Universe) Tick() {
	for row := 0; row < u.height; row++ {
		for col := 0; col < u.width; col++ {
			idx := u.GetIndex(row, col)
			u.next.set(idx, NextState(u.cells.get(idx), u.LiveNeighborCount(row, col)))
		}
	}
	u.cells, u.next = u.next, u.cells
}

//AliveCells returns indexes of the live cells in ascending order
func (u *Universe) AliveCells() []int {
	alive := make([]int, 0, u.cells.count())
	for i := 0; i < u.cells.n; i++ {
		if u.cells.get(i) {
			alive = append(alive, i)
		}
	}
	return alive
}

//LiveCount returns the count of live cells
func (u *Universe) LiveCount() int {
	return u.cells.count()
}

//SetCells kills all cells and then makes alive the cells at the given row, col coordinates
func (u *Universe) SetCells(coords [][2]int) {
	u.cells.reset(u.width * u.height)
	for _, c := range coords {
		u.cells.set(u.GetIndex(c[0], c[1]), true)
	}
}

//ToggleCell inverts the state of the cell at row, col
func (u *Universe) ToggleCell(row int, col int) {
	u.cells.toggle(u.GetIndex(row, col))
}

//RandomCells resettles every cell using the random source
func (u *Universe) RandomCells() {
	for i := 0; i < u.cells.n; i++ {
		u.cells.set(i, Random(u, i))
	}
}

//ResetCells fits the storage to Width*Height cells and kills all of them
func (u *Universe) ResetCells() {
	n := u.width * u.height
	u.cells.reset(n)
	u.next.reset(n)
}

//ClearCells kills all cells
func (u *Universe) ClearCells() {
	u.ResetCells()
}

//SetWidth changes the count of columns, all cells are killed
func (u *Universe) SetWidth(width int) {
	mustBePositive("width", width)
	u.width = width
	u.ResetCells()
}

//SetHeight changes the count of rows, all cells are killed
func (u *Universe) SetHeight(height int) {
	mustBePositive("height", height)
	u.height = height
	u.ResetCells()
}

//Clone returns the deep copy of the universe sharing the random source
func (u *Universe) Clone() *Universe {
	return &Universe{
		width:  u.width,
		height: u.height,
		cells:  u.cells.clone(),
		next:   newCells(u.cells.n),
		rnd:    u.rnd,
	}
}

//Render returns the text representation of the universe
func (u *Universe) Render() string {
	return u.String()
}

//String renders the universe as a block of glyphs, one line per row
func (u *Universe) String() string {
	var b strings.Builder
	b.Grow(u.cells.n*3 + u.height)
	for row := 0; row < u.height; row++ {
		for col := 0; col < u.width; col++ {
			if u.IsAlive(row, col) {
				b.WriteRune(AliveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func mustBePositive(name string, v int) {
	if v <= 0 {
		panic(fmt.Sprintf("universe: %s must be positive, got %d", name, v))
	}
}
