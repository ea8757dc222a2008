package matrix

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/fantasy5/ticket"
)

func allVariants(t *testing.T) []ContactMatrix {
	t.Helper()
	return []ContactMatrix{
		NewGridMatrix(ticket.DefaultPoolSize, false),
		NewGridMatrix(ticket.DefaultPoolSize, true),
		NewProximityMatrix(ticket.DefaultPoolSize, 3, true),
		NewProximityMatrix(ticket.DefaultPoolSize, 3, false),
	}
}

func TestNeighborInvariants(t *testing.T) {
	is := is.New(t)
	for _, m := range allVariants(t) {
		for n := 1; n <= m.PoolSize(); n++ {
			neighbors, err := m.Neighbors(n)
			is.NoErr(err)
			count, err := m.NeighborCount(n)
			is.NoErr(err)
			is.Equal(count, len(neighbors))
			for _, nb := range neighbors {
				if nb == n {
					t.Fatalf("%s: %d is its own neighbor", m.Name(), n)
				}
				if nb < 1 || nb > m.PoolSize() {
					t.Fatalf("%s: neighbor %d of %d outside pool", m.Name(), nb, n)
				}
			}
			bias, err := m.BiasFactor(n)
			is.NoErr(err)
			is.True(bias > 0)
		}
	}
}

func TestOutOfPoolNumbersError(t *testing.T) {
	is := is.New(t)
	for _, m := range allVariants(t) {
		for _, n := range []int{0, -1, 40, 100} {
			_, err := m.Neighbors(n)
			is.True(err != nil)
			_, err = m.NeighborCount(n)
			is.True(err != nil)
			_, err = m.BiasFactor(n)
			is.True(err != nil)
		}
	}
}

func TestGridRawBias(t *testing.T) {
	is := is.New(t)
	g := NewGridMatrix(ticket.DefaultPoolSize, false)

	// The reference 6x7 layout has five corner positions.
	is.Equal(g.CornerNumbers(), []int{1, 6, 36, 37, 39})
	for _, corner := range []int{1, 6, 36, 37, 39} {
		count, err := g.NeighborCount(corner)
		is.NoErr(err)
		is.True(count == 3 || count == 4)
		bias, err := g.BiasFactor(corner)
		is.NoErr(err)
		is.Equal(bias, 1.0) // raw grid applies no correction
	}

	interior := 0
	for n := 1; n <= g.PoolSize(); n++ {
		if count, _ := g.NeighborCount(n); count == 8 {
			interior++
		}
	}
	is.True(interior > 0)

	a := AnalyzeBias(g)
	is.True(!a.Uniform)
	is.True(a.EffectiveVariance >= UniformityThreshold)
}

func TestGridCorrectedIsUniform(t *testing.T) {
	is := is.New(t)
	g := NewGridMatrix(ticket.DefaultPoolSize, true)
	a := AnalyzeBias(g)
	is.True(a.EffectiveVariance < UniformityThreshold)
	is.True(a.Uniform)

	// Corrected and raw grids share the same adjacency.
	raw := NewGridMatrix(ticket.DefaultPoolSize, false)
	for n := 1; n <= g.PoolSize(); n++ {
		gn, _ := g.Neighbors(n)
		rn, _ := raw.Neighbors(n)
		is.Equal(gn, rn)
	}
}

func TestGridKnownNeighbors(t *testing.T) {
	is := is.New(t)
	g := NewGridMatrix(ticket.DefaultPoolSize, false)
	// 1 sits in the top-left corner of the card.
	ns, err := g.Neighbors(1)
	is.NoErr(err)
	is.Equal(ns, []int{2, 7, 8})
	// 8 is interior: full 8-neighborhood.
	ns, err = g.Neighbors(8)
	is.NoErr(err)
	is.Equal(ns, []int{1, 2, 3, 7, 9, 13, 14, 15})
}

func TestProximityWraparoundUniform(t *testing.T) {
	is := is.New(t)
	for _, window := range []int{1, 2, 3, 5} {
		p := NewProximityMatrix(ticket.DefaultPoolSize, window, true)
		for n := 1; n <= p.PoolSize(); n++ {
			count, err := p.NeighborCount(n)
			is.NoErr(err)
			is.Equal(count, 2*window)
			bias, err := p.BiasFactor(n)
			is.NoErr(err)
			is.Equal(bias, 1.0)
		}
		is.True(AnalyzeBias(p).Uniform)
	}
}

func TestProximityNoWraparoundEdges(t *testing.T) {
	is := is.New(t)
	p := NewProximityMatrix(ticket.DefaultPoolSize, 3, false)
	ns, err := p.Neighbors(1)
	is.NoErr(err)
	is.Equal(ns, []int{2, 3, 4})
	bias, err := p.BiasFactor(1)
	is.NoErr(err)
	is.Equal(bias, 2.0) // 6 target neighbors over 3 actual
	bias, err = p.BiasFactor(20)
	is.NoErr(err)
	is.Equal(bias, 1.0)
}

func TestProximityWrapNeighbors(t *testing.T) {
	is := is.New(t)
	p := NewProximityMatrix(ticket.DefaultPoolSize, 3, true)
	ns, err := p.Neighbors(1)
	is.NoErr(err)
	is.Equal(ns, []int{2, 3, 4, 36, 37, 38})
	ns, err = p.Neighbors(39)
	is.NoErr(err)
	is.Equal(ns, []int{1, 2, 3, 36, 37, 38})
}

func TestContactScores(t *testing.T) {
	is := is.New(t)
	p := NewProximityMatrix(ticket.DefaultPoolSize, 3, true)
	scores := ContactScores(p, []int{10})
	hit := map[int]bool{7: true, 8: true, 9: true, 11: true, 12: true, 13: true}
	for n := 1; n <= p.PoolSize(); n++ {
		if hit[n] {
			is.Equal(scores[n], 1.0)
		} else {
			is.Equal(scores[n], 0.0)
		}
	}
}

func TestContactScoresTolerateBadRecent(t *testing.T) {
	is := is.New(t)
	p := NewProximityMatrix(ticket.DefaultPoolSize, 3, true)
	// Out-of-pool entries are ignored, duplicates count once.
	clean := ContactScores(p, []int{10})
	dirty := ContactScores(p, []int{10, 10, 0, -5, 40, 1000})
	is.Equal(clean, dirty)
}

func TestInContactNumbers(t *testing.T) {
	is := is.New(t)
	p := NewProximityMatrix(ticket.DefaultPoolSize, 2, false)
	got := InContactNumbers(p, []int{10, 30, 99})
	is.Equal(got, []int{8, 9, 10, 11, 12, 28, 29, 30, 31, 32})
}

func TestNewByVariantName(t *testing.T) {
	is := is.New(t)
	m, err := New(VariantProximity, ticket.DefaultPoolSize, Options{WindowSize: 3, Wraparound: true})
	is.NoErr(err)
	is.Equal(m.Name(), "Proximity(k=3, wrap)")

	m, err = New(VariantGrid, ticket.DefaultPoolSize, Options{})
	is.NoErr(err)
	is.Equal(m.Name(), "Grid6x7(corrected)")

	_, err = New("nope", ticket.DefaultPoolSize, Options{})
	is.True(err != nil)
}

func TestCSVGridMatrix(t *testing.T) {
	is := is.New(t)
	// A 3x3 layout over a 9-number pool.
	layout := "1,4,7\n2,5,8\n3,6,9\n"
	m, err := ParseCSVGridMatrix(strings.NewReader(layout), "tiny", true)
	is.NoErr(err)
	is.Equal(m.PoolSize(), 9)
	ns, err := m.Neighbors(5)
	is.NoErr(err)
	is.Equal(ns, []int{1, 2, 3, 4, 6, 7, 8, 9})
	count, err := m.NeighborCount(1)
	is.NoErr(err)
	is.Equal(count, 3)
	bias, err := m.BiasFactor(1)
	is.NoErr(err)
	is.Equal(bias, 8.0/3.0)
	is.True(AnalyzeBias(m).Uniform)

	_, err = ParseCSVGridMatrix(strings.NewReader("1,3\n"), "gap", false)
	is.True(err != nil) // 2 is missing
	_, err = ParseCSVGridMatrix(strings.NewReader("1,2\n2,3\n"), "dup", false)
	is.True(err != nil)
}
