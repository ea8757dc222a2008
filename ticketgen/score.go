package ticketgen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/fantasy5/matrix"
	"github.com/domino14/fantasy5/ticket"
)

// ScoredTicket pairs a ticket with its contact and position scores.
type ScoredTicket struct {
	Ticket        ticket.Ticket
	ContactScore  float64
	PositionScore float64
	CombinedScore float64
}

// ScoreTickets scores each ticket against the recent draw numbers and sorts
// the result by combined score, best first. The combined score is the
// product of the summed contact scores and the fraction of ranks whose
// position constraint holds.
func (g *Generator) ScoreTickets(tickets []ticket.Ticket, recent []int) []ScoredTicket {
	scores := matrix.ContactScores(g.matrix, recent)
	out := make([]ScoredTicket, len(tickets))
	for i, t := range tickets {
		contact := lo.SumBy(t, func(n int) float64 {
			return scores[n]
		})
		posScore := g.positions.ScoreTicket(t)
		out[i] = ScoredTicket{
			Ticket:        t,
			ContactScore:  contact,
			PositionScore: posScore,
			CombinedScore: contact * posScore,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CombinedScore > out[j].CombinedScore
	})
	return out
}
