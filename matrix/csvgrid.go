package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// CSVGridMatrix is a grid matrix whose layout comes from a CSV file instead
// of the standard column fill, so alternative card geometries can be tested
// without code changes. Cells containing a number are occupied; anything
// else is an empty cell. Adjacency and bias correction work exactly like
// GridMatrix.
type CSVGridMatrix struct {
	name            string
	poolSize        int
	rows, cols      int
	applyCorrection bool

	grid      [][]int
	positions map[int][2]int
	neighbors [][]int
	counts    []int
	factors   []float64
	maxCount  int
}

// NewCSVGridMatrix loads a grid layout from a CSV file.
func NewCSVGridMatrix(path string, applyCorrection bool) (*CSVGridMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseCSVGridMatrix(f, name, applyCorrection)
}

// ParseCSVGridMatrix reads a grid layout from r. Every number from 1 to the
// largest number present must appear exactly once.
func ParseCSVGridMatrix(r io.Reader, name string, applyCorrection bool) (*CSVGridMatrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are padded below

	m := &CSVGridMatrix{
		name:            name,
		applyCorrection: applyCorrection,
		positions:       make(map[int][2]int),
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading grid layout: %w", err)
		}
		row := make([]int, len(record))
		empty := true
		for i, cell := range record {
			n, convErr := strconv.Atoi(strings.TrimSpace(cell))
			if convErr != nil || n < 1 {
				continue
			}
			row[i] = n
			empty = false
		}
		if !empty {
			m.grid = append(m.grid, row)
		}
	}
	if len(m.grid) == 0 {
		return nil, fmt.Errorf("grid layout %q is empty", name)
	}

	m.rows = len(m.grid)
	for _, row := range m.grid {
		if len(row) > m.cols {
			m.cols = len(row)
		}
	}
	for r := range m.grid {
		for len(m.grid[r]) < m.cols {
			m.grid[r] = append(m.grid[r], 0)
		}
	}

	for r, row := range m.grid {
		for c, n := range row {
			if n == 0 {
				continue
			}
			if _, dup := m.positions[n]; dup {
				return nil, fmt.Errorf("grid layout %q has duplicate number %d", name, n)
			}
			m.positions[n] = [2]int{r, c}
			if n > m.poolSize {
				m.poolSize = n
			}
		}
	}
	for n := 1; n <= m.poolSize; n++ {
		if _, ok := m.positions[n]; !ok {
			return nil, fmt.Errorf("grid layout %q is missing number %d", name, n)
		}
	}

	m.buildNeighborCache()
	m.computeCorrectionFactors()
	log.Debug().Msgf("loaded %dx%d csv grid %q, pool %d", m.rows, m.cols, name, m.poolSize)
	return m, nil
}

func (m *CSVGridMatrix) buildNeighborCache() {
	m.neighbors = make([][]int, m.poolSize+1)
	m.counts = make([]int, m.poolSize+1)
	for num := 1; num <= m.poolSize; num++ {
		pos := m.positions[num]
		var ns []int
		for _, d := range gridDirections {
			r, c := pos[0]+d[0], pos[1]+d[1]
			if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
				continue
			}
			if nb := m.grid[r][c]; nb != 0 {
				ns = append(ns, nb)
			}
		}
		insertionSort(ns)
		m.neighbors[num] = ns
		m.counts[num] = len(ns)
		if len(ns) > m.maxCount {
			m.maxCount = len(ns)
		}
	}
}

func (m *CSVGridMatrix) computeCorrectionFactors() {
	m.factors = make([]float64, m.poolSize+1)
	for num := 1; num <= m.poolSize; num++ {
		if m.counts[num] > 0 {
			m.factors[num] = float64(m.maxCount) / float64(m.counts[num])
		} else {
			m.factors[num] = 1.0
		}
	}
}

func (m *CSVGridMatrix) Name() string {
	if m.applyCorrection {
		return m.name + "(corrected)"
	}
	return m.name + "(original)"
}

func (m *CSVGridMatrix) PoolSize() int { return m.poolSize }

func (m *CSVGridMatrix) Neighbors(n int) ([]int, error) {
	if err := validateNumber(n, m.poolSize); err != nil {
		return nil, err
	}
	out := make([]int, len(m.neighbors[n]))
	copy(out, m.neighbors[n])
	return out, nil
}

func (m *CSVGridMatrix) NeighborCount(n int) (int, error) {
	if err := validateNumber(n, m.poolSize); err != nil {
		return 0, err
	}
	return m.counts[n], nil
}

func (m *CSVGridMatrix) BiasFactor(n int) (float64, error) {
	if err := validateNumber(n, m.poolSize); err != nil {
		return 0, err
	}
	if !m.applyCorrection {
		return 1.0, nil
	}
	return m.factors[n], nil
}
