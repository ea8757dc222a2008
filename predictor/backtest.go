package predictor

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fantasy5/stats"
	"github.com/domino14/fantasy5/ticket"
	"github.com/domino14/fantasy5/ticketgen"
)

// TicketMatch records how one generated ticket scored against the actual
// draw.
type TicketMatch struct {
	Ticket          ticket.Ticket
	Matches         int
	MatchingNumbers ticket.Ticket
}

// DayResult is the outcome of backtesting a single date.
type DayResult struct {
	Prediction *Prediction
	// Actual is nil when the dataset has no draw on the test date; the
	// match fields are zero in that case.
	Actual            ticket.Ticket
	Matches           []TicketMatch
	BestMatch         int
	MatchDistribution [6]int
	TicketsWith3Plus  int
}

// BacktestSingle predicts for testDate using only draws before it, then
// scores the tickets against the actual draw on that date. A date with no
// recorded draw still returns the prediction, with Actual nil.
func (p *Predictor) BacktestSingle(testDate time.Time, numTickets int, strategy ticketgen.Strategy) (*DayResult, error) {
	pred, err := p.Predict(testDate, numTickets, strategy)
	if err != nil {
		return nil, err
	}
	result := &DayResult{Prediction: pred}

	actual, ok := p.history.DrawOn(testDate)
	if !ok {
		return result, nil
	}
	result.Actual = actual.Numbers

	result.Matches = make([]TicketMatch, len(pred.Tickets))
	for i, t := range pred.Tickets {
		matching := t.Intersection(actual.Numbers)
		m := TicketMatch{Ticket: t, Matches: len(matching), MatchingNumbers: matching}
		result.Matches[i] = m
		if m.Matches < len(result.MatchDistribution) {
			result.MatchDistribution[m.Matches]++
		}
		if m.Matches > result.BestMatch {
			result.BestMatch = m.Matches
		}
		if m.Matches >= 3 {
			result.TicketsWith3Plus++
		}
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Matches > result.Matches[j].Matches
	})
	return result, nil
}

// RangeResult aggregates a backtest over a span of dates.
type RangeResult struct {
	Start, End time.Time
	DaysTested int

	AvgBestMatch   float64
	StdevBestMatch float64
	MinBestMatch   float64
	MaxBestMatch   float64
	// ConfidenceBand is the 95% half-width around AvgBestMatch.
	ConfidenceBand float64

	DaysWith5     int
	DaysWith4Plus int
	DaysWith3Plus int

	Total3PlusTickets int

	// ChanceBaseline is the best match a blind-luck player of the same
	// number of tickets would expect per day.
	ChanceBaseline float64

	Daily []*DayResult
}

// BacktestRange backtests every dataset draw between start and end
// inclusive. Dates in the range without a recorded draw are skipped.
func (p *Predictor) BacktestRange(start, end time.Time, numTickets int, strategy ticketgen.Strategy) (*RangeResult, error) {
	result := &RangeResult{
		Start: start,
		End:   end,
		ChanceBaseline: stats.ExpectedBestMatch(
			numTickets, p.positions.PickSize(), p.matrix.PoolSize()),
	}
	bestMatches := &stats.Statistic{}

	draws := p.history.Draws()
	idx := p.history.From(start)
	if idx < 0 {
		return result, nil
	}
	for _, draw := range draws[idx:] {
		if draw.Date.After(end) {
			break
		}
		day, err := p.BacktestSingle(draw.Date, numTickets, strategy)
		if err != nil {
			// The earliest draws have no lookback material; skip them.
			log.Debug().Err(err).Time("date", draw.Date).Msg("skipping backtest date")
			continue
		}
		if day.Actual == nil {
			continue
		}
		result.Daily = append(result.Daily, day)
		bestMatches.Push(float64(day.BestMatch))
		result.Total3PlusTickets += day.TicketsWith3Plus
		if day.BestMatch == 5 {
			result.DaysWith5++
		}
		if day.BestMatch >= 4 {
			result.DaysWith4Plus++
		}
		if day.BestMatch >= 3 {
			result.DaysWith3Plus++
		}
	}

	result.DaysTested = bestMatches.Total()
	if result.DaysTested > 0 {
		result.AvgBestMatch = bestMatches.Mean()
		result.StdevBestMatch = bestMatches.Stdev()
		result.MinBestMatch = bestMatches.Min()
		result.MaxBestMatch = bestMatches.Max()
		result.ConfidenceBand = stats.ZVal(95) * result.StdevBestMatch /
			math.Sqrt(float64(result.DaysTested))
	}
	return result, nil
}
