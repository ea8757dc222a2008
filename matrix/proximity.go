package matrix

import "fmt"

// DefaultWindowSize is the recommended numeric-proximity window.
const DefaultWindowSize = 3

// ProximityMatrix defines contact by numeric distance: m neighbors n when
// 0 < |n-m| <= window. With wraparound the pool is toroidal (1 borders N),
// which gives every number exactly 2*window neighbors and therefore no
// structural bias. Without wraparound, numbers near the pool edges are
// boosted with the same normalization used by the grid variant.
type ProximityMatrix struct {
	poolSize   int
	window     int
	wraparound bool
	neighbors  [][]int
}

// NewProximityMatrix builds a numeric-proximity matrix.
func NewProximityMatrix(poolSize, window int, wraparound bool) *ProximityMatrix {
	if window < 1 {
		window = DefaultWindowSize
	}
	p := &ProximityMatrix{poolSize: poolSize, window: window, wraparound: wraparound}
	p.buildNeighborCache()
	return p
}

func (p *ProximityMatrix) buildNeighborCache() {
	p.neighbors = make([][]int, p.poolSize+1)
	for n := 1; n <= p.poolSize; n++ {
		seen := make(map[int]bool, 2*p.window)
		for offset := -p.window; offset <= p.window; offset++ {
			if offset == 0 {
				continue
			}
			nb := n + offset
			if nb >= 1 && nb <= p.poolSize {
				seen[nb] = true
				continue
			}
			if !p.wraparound {
				continue
			}
			if nb < 1 {
				nb += p.poolSize
			} else {
				nb -= p.poolSize
			}
			if nb >= 1 && nb <= p.poolSize && nb != n {
				seen[nb] = true
			}
		}
		ns := make([]int, 0, len(seen))
		for nb := range seen {
			ns = append(ns, nb)
		}
		insertionSort(ns)
		p.neighbors[n] = ns
	}
}

func (p *ProximityMatrix) Name() string {
	wrap := "nowrap"
	if p.wraparound {
		wrap = "wrap"
	}
	return fmt.Sprintf("Proximity(k=%d, %s)", p.window, wrap)
}

func (p *ProximityMatrix) PoolSize() int { return p.poolSize }

func (p *ProximityMatrix) Neighbors(n int) ([]int, error) {
	if err := validateNumber(n, p.poolSize); err != nil {
		return nil, err
	}
	out := make([]int, len(p.neighbors[n]))
	copy(out, p.neighbors[n])
	return out, nil
}

func (p *ProximityMatrix) NeighborCount(n int) (int, error) {
	if err := validateNumber(n, p.poolSize); err != nil {
		return 0, err
	}
	return len(p.neighbors[n]), nil
}

func (p *ProximityMatrix) BiasFactor(n int) (float64, error) {
	if err := validateNumber(n, p.poolSize); err != nil {
		return 0, err
	}
	if p.wraparound {
		// Every number has 2*window neighbors by construction.
		return 1.0, nil
	}
	actual := len(p.neighbors[n])
	if actual == 0 {
		return 1.0, nil
	}
	return float64(2*p.window) / float64(actual), nil
}
