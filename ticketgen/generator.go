// Package ticketgen generates candidate tickets by combining contact scores
// from a matrix with per-position range constraints, under a handful of
// selection strategies.
package ticketgen

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/combin"
	"lukechampine.com/frand"

	"github.com/domino14/fantasy5/matrix"
	"github.com/domino14/fantasy5/position"
	"github.com/domino14/fantasy5/ticket"
)

// Strategy selects how tickets are assembled from the candidate pools.
type Strategy string

const (
	StrategyBalanced      Strategy = "balanced"
	StrategyContactFirst  Strategy = "contact_first"
	StrategyPositionFirst Strategy = "position_first"
	StrategyRandom        Strategy = "random"
)

// Strategies lists every known strategy, in display order.
var Strategies = []Strategy{
	StrategyBalanced, StrategyContactFirst, StrategyPositionFirst, StrategyRandom,
}

// ParseStrategy maps a config string to a Strategy, defaulting to balanced.
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategyContactFirst, StrategyPositionFirst, StrategyRandom:
		return Strategy(s)
	default:
		return StrategyBalanced
	}
}

// Tunables are the knobs of the generation loops. Zero values are replaced
// by the defaults at construction time.
type Tunables struct {
	// ScoreFloor is added to every candidate's contact score during
	// balanced weighting, so zero-contact numbers keep a small chance.
	ScoreFloor float64
	// ContactBias is the probability that position_first picks from the
	// in-contact subset of a rank's pool when that subset is nonempty.
	ContactBias float64
	// TopContactPool caps how many of the highest-contact numbers
	// contact_first enumerates combinations from.
	TopContactPool int
	// Attempt caps, as multiples of the requested ticket count.
	BalancedAttempts int
	PositionAttempts int
	RandomAttempts   int
}

// DefaultTunables returns the stock generation knobs.
func DefaultTunables() Tunables {
	return Tunables{
		ScoreFloor:       0.1,
		ContactBias:      0.6,
		TopContactPool:   20,
		BalancedAttempts: 100,
		PositionAttempts: 50,
		RandomAttempts:   50,
	}
}

func (t Tunables) withDefaults() Tunables {
	d := DefaultTunables()
	if t.ScoreFloor == 0 {
		t.ScoreFloor = d.ScoreFloor
	}
	if t.ContactBias == 0 {
		t.ContactBias = d.ContactBias
	}
	if t.TopContactPool == 0 {
		t.TopContactPool = d.TopContactPool
	}
	if t.BalancedAttempts == 0 {
		t.BalancedAttempts = d.BalancedAttempts
	}
	if t.PositionAttempts == 0 {
		t.PositionAttempts = d.PositionAttempts
	}
	if t.RandomAttempts == 0 {
		t.RandomAttempts = d.RandomAttempts
	}
	return t
}

// Generator builds tickets from a contact matrix and a position filter.
type Generator struct {
	matrix    matrix.ContactMatrix
	positions *position.Filter
	tunables  Tunables

	seed       int64
	randSource *rand.Rand
}

func seededRandSource() (int64, *rand.Rand) {
	seed := int64(frand.Uint64n(math.MaxInt64))
	return seed, rand.New(rand.NewSource(seed))
}

// NewGenerator creates a Generator with a randomly derived seed.
func NewGenerator(m matrix.ContactMatrix, pf *position.Filter, tunables Tunables) *Generator {
	seed, src := seededRandSource()
	g := &Generator{
		matrix:     m,
		positions:  pf,
		tunables:   tunables.withDefaults(),
		seed:       seed,
		randSource: src,
	}
	log.Debug().Int64("seed", seed).Str("matrix", m.Name()).Msg("created generator")
	return g
}

// Seed resets the generator's random source for reproducible runs.
func (g *Generator) Seed(seed int64) {
	g.seed = seed
	g.randSource = rand.New(rand.NewSource(seed))
}

// SeedValue returns the seed currently in effect.
func (g *Generator) SeedValue() int64 {
	return g.seed
}

// Matrix returns the contact matrix this generator scores with.
func (g *Generator) Matrix() matrix.ContactMatrix {
	return g.matrix
}

// Positions returns the position filter constraining each rank.
func (g *Generator) Positions() *position.Filter {
	return g.positions
}

// GenerateTickets produces up to numTickets distinct tickets using the given
// strategy. Fewer tickets than requested can come back when the attempt cap
// runs out before enough distinct valid tickets are found; that is not an
// error.
func (g *Generator) GenerateTickets(recent []int, numTickets int, strategy Strategy) []ticket.Ticket {
	if numTickets <= 0 {
		return nil
	}
	scores := matrix.ContactScores(g.matrix, recent)
	candidates := g.positions.CandidatesByPosition(nil)

	var tickets []ticket.Ticket
	switch strategy {
	case StrategyContactFirst:
		tickets = g.generateContactFirst(scores, candidates, numTickets)
	case StrategyPositionFirst:
		tickets = g.generatePositionFirst(scores, candidates, numTickets)
	case StrategyRandom:
		tickets = g.generateRandom(candidates, numTickets)
	default:
		tickets = g.generateBalanced(scores, candidates, numTickets)
	}
	if len(tickets) < numTickets {
		log.Debug().Int("requested", numTickets).Int("generated", len(tickets)).
			Str("strategy", string(strategy)).Msg("attempt cap reached before quota")
	}
	return tickets
}

type weightedNum struct {
	num    int
	weight float64
}

// generateBalanced draws each rank by weighted random selection, weighting
// every candidate by its contact score plus the score floor.
func (g *Generator) generateBalanced(scores map[int]float64, candidates [][]int, numTickets int) []ticket.Ticket {
	weighted := make([][]weightedNum, len(candidates))
	for pos, nums := range candidates {
		pool := make([]weightedNum, len(nums))
		for i, n := range nums {
			pool[i] = weightedNum{num: n, weight: scores[n] + g.tunables.ScoreFloor}
		}
		weighted[pos] = pool
	}

	var tickets []ticket.Ticket
	seen := map[string]bool{}
	maxAttempts := numTickets * g.tunables.BalancedAttempts
	for attempts := 0; len(tickets) < numTickets && attempts < maxAttempts; attempts++ {
		t := make(ticket.Ticket, 0, len(candidates))
		for _, pool := range weighted {
			n, ok := g.pickWeighted(pool, t)
			if !ok {
				break
			}
			t = append(t, n)
		}
		if len(t) == len(candidates) {
			addUnique(&tickets, seen, t)
		}
	}
	return tickets
}

// pickWeighted selects one number from pool by cumulative weight, skipping
// numbers already on the ticket.
func (g *Generator) pickWeighted(pool []weightedNum, taken ticket.Ticket) (int, bool) {
	available := pool[:0:0]
	total := 0.0
	for _, wn := range pool {
		if taken.Contains(wn.num) {
			continue
		}
		available = append(available, wn)
		total += wn.weight
	}
	if len(available) == 0 {
		return 0, false
	}
	if total == 0 {
		return available[g.randSource.Intn(len(available))].num, true
	}
	r := g.randSource.Float64() * total
	cumulative := 0.0
	for _, wn := range available {
		cumulative += wn.weight
		if cumulative >= r {
			return wn.num, true
		}
	}
	return available[len(available)-1].num, true
}

// generateContactFirst enumerates combinations of the highest-contact
// numbers, keeping those the position filter accepts, then falls back to
// balanced generation for any shortfall.
func (g *Generator) generateContactFirst(scores map[int]float64, candidates [][]int, numTickets int) []ticket.Ticket {
	pick := g.positions.PickSize()
	inContact := lo.Filter(lo.Keys(scores), func(n int, _ int) bool {
		return scores[n] > 0
	})
	sort.Slice(inContact, func(i, j int) bool {
		if scores[inContact[i]] != scores[inContact[j]] {
			return scores[inContact[i]] > scores[inContact[j]]
		}
		return inContact[i] < inContact[j]
	})
	if len(inContact) > g.tunables.TopContactPool {
		inContact = inContact[:g.tunables.TopContactPool]
	}

	var tickets []ticket.Ticket
	seen := map[string]bool{}
	if len(inContact) >= pick {
		gen := combin.NewCombinationGenerator(len(inContact), pick)
		idx := make([]int, pick)
		for gen.Next() && len(tickets) < numTickets {
			gen.Combination(idx)
			t := make(ticket.Ticket, pick)
			for i, j := range idx {
				t[i] = inContact[j]
			}
			t = t.Sorted()
			if ok, _ := g.positions.ValidateTicket(t); ok {
				addUnique(&tickets, seen, t)
			}
		}
	}

	if len(tickets) < numTickets {
		for _, t := range g.generateBalanced(scores, candidates, numTickets-len(tickets)) {
			addUnique(&tickets, seen, t)
		}
	}
	if len(tickets) > numTickets {
		tickets = tickets[:numTickets]
	}
	return tickets
}

// generatePositionFirst picks uniformly within each rank's pool, with a
// biased preference for in-contact numbers.
func (g *Generator) generatePositionFirst(scores map[int]float64, candidates [][]int, numTickets int) []ticket.Ticket {
	var tickets []ticket.Ticket
	seen := map[string]bool{}
	maxAttempts := numTickets * g.tunables.PositionAttempts
	for attempts := 0; len(tickets) < numTickets && attempts < maxAttempts; attempts++ {
		t := make(ticket.Ticket, 0, len(candidates))
		for _, pool := range candidates {
			available := availableNums(pool, t)
			if len(available) == 0 {
				break
			}
			inContact := lo.Filter(available, func(n int, _ int) bool {
				return scores[n] > 0
			})
			var n int
			if len(inContact) > 0 && g.randSource.Float64() < g.tunables.ContactBias {
				n = inContact[g.randSource.Intn(len(inContact))]
			} else {
				n = available[g.randSource.Intn(len(available))]
			}
			t = append(t, n)
		}
		if len(t) == len(candidates) {
			addUnique(&tickets, seen, t)
		}
	}
	return tickets
}

// generateRandom picks uniformly within each rank's pool.
func (g *Generator) generateRandom(candidates [][]int, numTickets int) []ticket.Ticket {
	var tickets []ticket.Ticket
	seen := map[string]bool{}
	maxAttempts := numTickets * g.tunables.RandomAttempts
	for attempts := 0; len(tickets) < numTickets && attempts < maxAttempts; attempts++ {
		t := make(ticket.Ticket, 0, len(candidates))
		for _, pool := range candidates {
			available := availableNums(pool, t)
			if len(available) == 0 {
				break
			}
			t = append(t, available[g.randSource.Intn(len(available))])
		}
		if len(t) == len(candidates) {
			addUnique(&tickets, seen, t)
		}
	}
	return tickets
}

func availableNums(pool []int, taken ticket.Ticket) []int {
	return lo.Filter(pool, func(n int, _ int) bool {
		return !taken.Contains(n)
	})
}

// addUnique appends the sorted form of t if its key was not seen yet.
func addUnique(tickets *[]ticket.Ticket, seen map[string]bool, t ticket.Ticket) {
	sorted := t.Sorted()
	key := sorted.Key()
	if seen[key] {
		return
	}
	seen[key] = true
	*tickets = append(*tickets, sorted)
}
