// Package matrix defines contact/adjacency models over the number pool.
// A ContactMatrix decides which pool numbers are considered related to each
// other, and carries a per-number bias correction factor that normalizes
// structural asymmetries between the models. Scoring and bias analysis are
// free functions layered on top of the interface.
package matrix

import (
	"fmt"
	"sort"
)

// UniformityThreshold is the max-minus-min effective contact score below
// which a matrix is considered free of positional bias.
const UniformityThreshold = 0.5

// A ContactMatrix defines an adjacency relation over the pool [1, N].
// Implementations build their caches at construction and are immutable
// afterwards, so they are safe for unsynchronized concurrent reads.
type ContactMatrix interface {
	// Name identifies the variant and its parameters.
	Name() string
	// PoolSize returns N; valid numbers are 1 through N inclusive.
	PoolSize() int
	// Neighbors returns the sorted neighbor set of n. A number is never
	// its own neighbor. An out-of-pool n is an error.
	Neighbors(n int) ([]int, error)
	// NeighborCount returns len(Neighbors(n)) without copying.
	NeighborCount(n int) (int, error)
	// BiasFactor returns the positive multiplier that normalizes n's
	// effective contact opportunity. 1.0 means no correction.
	BiasFactor(n int) (float64, error)
}

func validateNumber(n, poolSize int) error {
	if n < 1 || n > poolSize {
		return fmt.Errorf("number must be between 1 and %d, got %d", poolSize, n)
	}
	return nil
}

// ContactScores calculates the contact score of every pool number against a
// set of recently drawn numbers. A number's score is the count of recent
// numbers in its neighbor set, times its bias factor. Entries in recent that
// fall outside the pool are ignored; duplicates count once.
func ContactScores(m ContactMatrix, recent []int) map[int]float64 {
	recentSet := make(map[int]bool, len(recent))
	for _, r := range recent {
		if r >= 1 && r <= m.PoolSize() {
			recentSet[r] = true
		}
	}
	scores := make(map[int]float64, m.PoolSize())
	for n := 1; n <= m.PoolSize(); n++ {
		neighbors, _ := m.Neighbors(n)
		raw := 0
		for _, nb := range neighbors {
			if recentSet[nb] {
				raw++
			}
		}
		bias, _ := m.BiasFactor(n)
		scores[n] = float64(raw) * bias
	}
	return scores
}

// InContactNumbers returns every number adjacent to at least one recent
// number, plus the recent numbers themselves, clipped to the pool and
// sorted ascending.
func InContactNumbers(m ContactMatrix, recent []int) []int {
	inContact := make(map[int]bool)
	for _, r := range recent {
		if r < 1 || r > m.PoolSize() {
			continue
		}
		inContact[r] = true
		neighbors, _ := m.Neighbors(r)
		for _, nb := range neighbors {
			inContact[nb] = true
		}
	}
	out := make([]int, 0, len(inContact))
	for n := range inContact {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// BiasAnalysis summarizes the structural bias of a matrix. The effective
// score of a number is its neighbor count times its bias factor; a corrected
// matrix should have near-identical effective scores across the pool.
type BiasAnalysis struct {
	Name              string
	MinNeighbors      int
	MaxNeighbors      int
	AvgNeighbors      float64
	NeighborVariance  int
	MinEffective      float64
	MaxEffective      float64
	AvgEffective      float64
	EffectiveVariance float64
	Uniform           bool
}

// AnalyzeBias computes neighbor-count and effective-score statistics over
// the full pool.
func AnalyzeBias(m ContactMatrix) BiasAnalysis {
	a := BiasAnalysis{Name: m.Name()}
	var sumNeighbors int
	var sumEffective float64
	for n := 1; n <= m.PoolSize(); n++ {
		count, _ := m.NeighborCount(n)
		bias, _ := m.BiasFactor(n)
		effective := float64(count) * bias

		if n == 1 || count < a.MinNeighbors {
			a.MinNeighbors = count
		}
		if count > a.MaxNeighbors {
			a.MaxNeighbors = count
		}
		if n == 1 || effective < a.MinEffective {
			a.MinEffective = effective
		}
		if effective > a.MaxEffective {
			a.MaxEffective = effective
		}
		sumNeighbors += count
		sumEffective += effective
	}
	a.AvgNeighbors = float64(sumNeighbors) / float64(m.PoolSize())
	a.AvgEffective = sumEffective / float64(m.PoolSize())
	a.NeighborVariance = a.MaxNeighbors - a.MinNeighbors
	a.EffectiveVariance = a.MaxEffective - a.MinEffective
	a.Uniform = a.EffectiveVariance < UniformityThreshold
	return a
}
