package position

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/fantasy5/ticket"
)

func TestValidateTicket(t *testing.T) {
	is := is.New(t)
	f := NewFilter(Capture85)

	ok, checks := f.ValidateTicket(ticket.Ticket{5, 10, 20, 30, 35})
	is.True(ok)
	is.Equal(checks, []bool{true, true, true, true, true})

	// Rank-5 value 5 sits far below the 28-39 window.
	ok, checks = f.ValidateTicket(ticket.Ticket{1, 2, 3, 4, 5})
	is.True(!ok)
	is.Equal(checks[4], false)

	// Sorting happens inside validation.
	ok, _ = f.ValidateTicket(ticket.Ticket{35, 5, 30, 10, 20})
	is.True(ok)
}

func TestValidateWrongShape(t *testing.T) {
	is := is.New(t)
	f := NewFilter(Capture85)
	ok, checks := f.ValidateTicket(ticket.Ticket{5, 10, 20})
	is.True(!ok)
	is.Equal(checks, nil)
	is.Equal(f.ScoreTicket(ticket.Ticket{5, 10, 20}), 0.0)
}

func TestScoreTicket(t *testing.T) {
	is := is.New(t)
	f := NewFilter(Capture85)
	is.Equal(f.ScoreTicket(ticket.Ticket{5, 10, 20, 30, 35}), 1.0)
	// 1,2,3,4,5: ranks 1-2 pass (1 in 1-13, 2 not in 3-21? 2 < 3 fails).
	// Ranks: 1 ok; 2 fails (3-21); 3 fails (9-29); 4 fails (18-36); 5 fails.
	is.Equal(f.ScoreTicket(ticket.Ticket{1, 2, 3, 4, 5}), 0.2)
}

func TestCandidatesByPosition(t *testing.T) {
	is := is.New(t)
	f := NewFilter(Capture85)
	cands := f.CandidatesByPosition(nil)
	is.Equal(len(cands), 5)
	is.Equal(cands[0][0], 1)
	is.Equal(cands[0][len(cands[0])-1], 13)
	is.Equal(cands[4][0], 28)
	is.Equal(cands[4][len(cands[4])-1], 39)

	// Restricted search space.
	cands = f.CandidatesByPosition([]int{1, 5, 14, 29, 39})
	is.Equal(cands[0], []int{1, 5})
	is.Equal(cands[4], []int{29, 39})
}

func TestOverlapNumbers(t *testing.T) {
	is := is.New(t)
	f := NewFilter(Capture85)
	overlap := f.OverlapNumbers()
	// 10 is inside N_1 (1-13), N_2 (3-21) and N_3 (9-29).
	found := false
	for _, n := range overlap {
		if n == 10 {
			found = true
		}
	}
	is.True(found)
	// 1 only fits rank 1; it must not be flexible.
	for _, n := range overlap {
		is.True(n != 1)
	}
}

func TestPresetLevels(t *testing.T) {
	is := is.New(t)
	f80 := NewFilter(Capture80)
	f90 := NewFilter(Capture90)
	r80, err := f80.Rank(1)
	is.NoErr(err)
	r90, err := f90.Rank(1)
	is.NoErr(err)
	// Aggressive tables are narrower than conservative ones.
	is.True(r80.Max < r90.Max)
	_, err = f80.Rank(6)
	is.True(err != nil)
}

func TestLoadRangesYAML(t *testing.T) {
	is := is.New(t)
	doc := `
- position: N_1
  min: 1
  max: 10
  capture_rate: 0.8
- position: N_2
  min: 5
  max: 20
`
	ranges, err := LoadRanges(strings.NewReader(doc))
	is.NoErr(err)
	is.Equal(len(ranges), 2)
	is.Equal(ranges[0].Max, 10)

	f, err := NewFilterWithRanges(ranges, 20)
	is.NoErr(err)
	ok, _ := f.ValidateTicket(ticket.Ticket{3, 15})
	is.True(ok)

	_, err = LoadRanges(strings.NewReader("- {position: X, min: 9, max: 2}"))
	is.True(err != nil)
}
