package matrix

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultGridRows is the row count of the reference 6x7 card layout for the
// 39-number pool.
const DefaultGridRows = 6

// PositionType classifies where a number sits on the grid, by how many
// occupied cells surround it.
type PositionType string

const (
	PositionCorner      PositionType = "corner"
	PositionEdge        PositionType = "edge"
	PositionReducedEdge PositionType = "reduced_edge"
	PositionInterior    PositionType = "interior"
)

var gridDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// GridMatrix lays the pool out on a fixed 2-D grid, filling columns
// top-to-bottom, and treats the 8 compass-adjacent occupied cells as
// neighbors. The geometry gives corner numbers 3-4 neighbors and interior
// numbers 8, a structural bias that the optional correction factor removes
// by normalizing every number to the layout's maximum neighbor count.
type GridMatrix struct {
	poolSize        int
	rows, cols      int
	applyCorrection bool

	grid      [][]int // 0 = empty cell
	positions map[int][2]int
	neighbors [][]int // indexed by number
	counts    []int
	factors   []float64
	maxCount  int
}

// NewGridMatrix builds a grid matrix with the default row count. Pass
// applyCorrection=false for the raw (biased) baseline.
func NewGridMatrix(poolSize int, applyCorrection bool) *GridMatrix {
	return NewGridMatrixWithShape(poolSize, DefaultGridRows, applyCorrection)
}

// NewGridMatrixWithShape builds a grid matrix with an explicit row count.
// The column count is derived; trailing cells beyond the pool stay empty.
func NewGridMatrixWithShape(poolSize, rows int, applyCorrection bool) *GridMatrix {
	if rows < 1 {
		rows = DefaultGridRows
	}
	cols := (poolSize + rows - 1) / rows
	g := &GridMatrix{
		poolSize:        poolSize,
		rows:            rows,
		cols:            cols,
		applyCorrection: applyCorrection,
		positions:       make(map[int][2]int, poolSize),
	}
	g.buildLayout()
	g.buildNeighborCache()
	g.computeCorrectionFactors()
	log.Debug().Msgf("built %dx%d grid matrix for pool %d (correction=%v)",
		rows, cols, poolSize, applyCorrection)
	return g
}

func (g *GridMatrix) buildLayout() {
	g.grid = make([][]int, g.rows)
	for r := range g.grid {
		g.grid[r] = make([]int, g.cols)
	}
	// Columns fill top to bottom: 1..rows in the first column, and so on.
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			num := c*g.rows + r + 1
			if num > g.poolSize {
				break
			}
			g.grid[r][c] = num
			g.positions[num] = [2]int{r, c}
		}
	}
}

func (g *GridMatrix) buildNeighborCache() {
	g.neighbors = make([][]int, g.poolSize+1)
	g.counts = make([]int, g.poolSize+1)
	for num := 1; num <= g.poolSize; num++ {
		pos := g.positions[num]
		var ns []int
		for _, d := range gridDirections {
			r, c := pos[0]+d[0], pos[1]+d[1]
			if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
				continue
			}
			if nb := g.grid[r][c]; nb != 0 {
				ns = append(ns, nb)
			}
		}
		insertionSort(ns)
		g.neighbors[num] = ns
		g.counts[num] = len(ns)
		if len(ns) > g.maxCount {
			g.maxCount = len(ns)
		}
	}
}

func (g *GridMatrix) computeCorrectionFactors() {
	// Normalize everything to the layout's maximum observed neighbor
	// count, so effective contact opportunity is uniform across the card.
	g.factors = make([]float64, g.poolSize+1)
	for num := 1; num <= g.poolSize; num++ {
		if g.counts[num] > 0 {
			g.factors[num] = float64(g.maxCount) / float64(g.counts[num])
		} else {
			g.factors[num] = 1.0
		}
	}
}

func (g *GridMatrix) Name() string {
	if g.applyCorrection {
		return fmt.Sprintf("Grid%dx%d(corrected)", g.rows, g.cols)
	}
	return fmt.Sprintf("Grid%dx%d(raw)", g.rows, g.cols)
}

func (g *GridMatrix) PoolSize() int { return g.poolSize }

func (g *GridMatrix) Neighbors(n int) ([]int, error) {
	if err := validateNumber(n, g.poolSize); err != nil {
		return nil, err
	}
	out := make([]int, len(g.neighbors[n]))
	copy(out, g.neighbors[n])
	return out, nil
}

func (g *GridMatrix) NeighborCount(n int) (int, error) {
	if err := validateNumber(n, g.poolSize); err != nil {
		return 0, err
	}
	return g.counts[n], nil
}

func (g *GridMatrix) BiasFactor(n int) (float64, error) {
	if err := validateNumber(n, g.poolSize); err != nil {
		return 0, err
	}
	if !g.applyCorrection {
		return 1.0, nil
	}
	return g.factors[n], nil
}

// Position returns the (row, col) cell of a number on the grid.
func (g *GridMatrix) Position(n int) (int, int, error) {
	if err := validateNumber(n, g.poolSize); err != nil {
		return 0, 0, err
	}
	pos := g.positions[n]
	return pos[0], pos[1], nil
}

// PositionOf classifies a number by its neighbor count. The thresholds are
// derived from the layout's maximum neighbor count rather than assumed, so
// the classification holds for any grid shape.
func (g *GridMatrix) PositionOf(n int) (PositionType, error) {
	if err := validateNumber(n, g.poolSize); err != nil {
		return "", err
	}
	count := g.counts[n]
	switch {
	case count <= g.maxCount/2:
		return PositionCorner, nil
	case count <= g.maxCount-3:
		return PositionEdge, nil
	case count < g.maxCount:
		return PositionReducedEdge, nil
	default:
		return PositionInterior, nil
	}
}

// CornerNumbers returns the numbers classified as corners, the most
// disadvantaged positions of the raw layout.
func (g *GridMatrix) CornerNumbers() []int {
	var corners []int
	for n := 1; n <= g.poolSize; n++ {
		if pt, _ := g.PositionOf(n); pt == PositionCorner {
			corners = append(corners, n)
		}
	}
	return corners
}

// NumbersByPosition groups all pool numbers by their position type.
func (g *GridMatrix) NumbersByPosition() map[PositionType][]int {
	groups := make(map[PositionType][]int)
	for n := 1; n <= g.poolSize; n++ {
		pt, _ := g.PositionOf(n)
		groups[pt] = append(groups[pt], n)
	}
	return groups
}

// insertionSort keeps the tiny neighbor slices sorted without pulling in
// sort for 8-element inputs.
func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}
