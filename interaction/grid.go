package interaction

import (
	"math"
	"math/bits"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
)

const wordBits = 32

// Grid is a broad phase over regions. Every column and every row keeps a
// bitmask of the ids whose rect spans it; a query ORs the spanned columns,
// ORs the spanned rows and ANDs the two. The result is a superset of the
// overlapping ids, so callers still run the exact test.
//
// Ids are only meaningful until the next Init.
type Grid struct {
	origin       cp.Vector
	cellW, cellH float64
	cols, rows   int
	words        int

	colBits []uint32
	rowBits []uint32
	mergeX  []uint32
	mergeY  []uint32
}

// Init sizes the grid to cover bounds with at most desiredCols x
// desiredRows cells able to hold expected ids. Cell sizes are rounded up
// to whole units, so a small stage gets fewer cells than asked for. It
// returns false when fewer than two columns or two rows fit; the grid is
// unusable until a later Init succeeds.
func (g *Grid) Init(bounds cp.BB, desiredCols, desiredRows, expected int) bool {
	g.cols, g.rows, g.words = 0, 0, 0

	width := common.RectWidth(bounds)
	height := common.RectHeight(bounds)
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return false
	}
	if desiredCols < 2 || desiredRows < 2 {
		return false
	}

	cellW := math.Ceil(width / float64(desiredCols))
	cellH := math.Ceil(height / float64(desiredRows))
	cols := int(math.Ceil(width / cellW))
	rows := int(math.Ceil(height / cellH))
	if cols < 2 || rows < 2 {
		return false
	}

	g.origin = cp.Vector{X: bounds.L, Y: bounds.B}
	g.cellW, g.cellH = cellW, cellH
	g.cols, g.rows = cols, rows
	g.words = common.CeilDiv(max(expected, 1), wordBits)

	g.colBits = resetWords(g.colBits, cols*g.words)
	g.rowBits = resetWords(g.rowBits, rows*g.words)
	g.mergeX = resetWords(g.mergeX, g.words)
	g.mergeY = resetWords(g.mergeY, g.words)
	return true
}

// Ready reports whether the last Init succeeded.
func (g *Grid) Ready() bool {
	return g.cols >= 2 && g.rows >= 2
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Insert records id in every column and row r spans. Ids beyond the
// capacity given to Init are ignored.
func (g *Grid) Insert(id int, r cp.BB) {
	if !g.Ready() || id < 0 || id >= g.words*wordBits {
		return
	}
	word, mask := id/wordBits, uint32(1)<<(id%wordBits)

	c0, c1 := g.colSpan(r)
	for c := c0; c <= c1; c++ {
		g.colBits[c*g.words+word] |= mask
	}
	r0, r1 := g.rowSpan(r)
	for row := r0; row <= r1; row++ {
		g.rowBits[row*g.words+word] |= mask
	}
}

// Test appends to out the ids whose cell range intersects r's.
func (g *Grid) Test(r cp.BB, out []int) []int {
	if !g.Ready() {
		return out
	}
	clear(g.mergeX)
	clear(g.mergeY)

	c0, c1 := g.colSpan(r)
	for c := c0; c <= c1; c++ {
		orWords(g.mergeX, g.colBits[c*g.words:(c+1)*g.words])
	}
	r0, r1 := g.rowSpan(r)
	for row := r0; row <= r1; row++ {
		orWords(g.mergeY, g.rowBits[row*g.words:(row+1)*g.words])
	}

	for w := range g.mergeX {
		set := g.mergeX[w] & g.mergeY[w]
		for set != 0 {
			b := bits.TrailingZeros32(set)
			out = append(out, w*wordBits+b)
			set &= set - 1
		}
	}
	return out
}

// Spans are clamped to the grid, so rects outside the bounds or with
// infinite edges fall into the edge cells rather than being dropped.
func (g *Grid) colSpan(r cp.BB) (int, int) {
	return common.CellSpan(r.L, r.R, g.origin.X, g.cellW, g.cols)
}

func (g *Grid) rowSpan(r cp.BB) (int, int) {
	return common.CellSpan(r.B, r.T, g.origin.Y, g.cellH, g.rows)
}

func resetWords(buf []uint32, n int) []uint32 {
	if cap(buf) < n {
		return make([]uint32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

func orWords(dst, src []uint32) {
	for i := range dst {
		dst[i] |= src[i]
	}
}
