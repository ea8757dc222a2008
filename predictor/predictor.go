// Package predictor wires history, contact matrices, position filtering and
// ticket generation into one prediction surface, plus the backtest loops
// that judge it against actual draws.
package predictor

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fantasy5/filters"
	"github.com/domino14/fantasy5/history"
	"github.com/domino14/fantasy5/matrix"
	"github.com/domino14/fantasy5/position"
	"github.com/domino14/fantasy5/ticket"
	"github.com/domino14/fantasy5/ticketgen"
)

var (
	ErrNoDrawData     = errors.New("no draw data available")
	ErrNoPriorDraws   = errors.New("no draws found before target date")
	ErrMissingHistory = errors.New("predictor needs a draw history")
)

// Options configures a Predictor. Zero-value fields get defaults: a
// wraparound proximity matrix, the 85% capture filter, and a one-draw
// lookback.
type Options struct {
	Matrix    matrix.ContactMatrix
	Positions *position.Filter
	// Lookback is how many previous draws feed contact analysis.
	Lookback int
	// Filter, when non-nil, gates generated tickets through the
	// composition filters before scoring.
	Filter   *filters.TicketFilter
	Tunables ticketgen.Tunables
}

// Predictor generates tickets for a target date from the draws before it.
type Predictor struct {
	history   *history.History
	matrix    matrix.ContactMatrix
	positions *position.Filter
	generator *ticketgen.Generator
	filter    *filters.TicketFilter
	lookback  int
}

// New builds a Predictor over the given history.
func New(h *history.History, opts Options) (*Predictor, error) {
	if h == nil {
		return nil, ErrMissingHistory
	}
	m := opts.Matrix
	if m == nil {
		var err error
		m, err = matrix.New(matrix.VariantProximity, ticket.DefaultPoolSize, matrix.Options{})
		if err != nil {
			return nil, err
		}
	}
	pf := opts.Positions
	if pf == nil {
		pf = position.NewFilter(position.Capture85)
	}
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = 1
	}
	return &Predictor{
		history:   h,
		matrix:    m,
		positions: pf,
		generator: ticketgen.NewGenerator(m, pf, opts.Tunables),
		filter:    opts.Filter,
		lookback:  lookback,
	}, nil
}

// Seed makes subsequent generation reproducible.
func (p *Predictor) Seed(seed int64) {
	p.generator.Seed(seed)
}

// History returns the underlying draw history.
func (p *Predictor) History() *history.History {
	return p.history
}

// Matrix returns the contact matrix in use.
func (p *Predictor) Matrix() matrix.ContactMatrix {
	return p.matrix
}

// Positions returns the position filter in use.
func (p *Predictor) Positions() *position.Filter {
	return p.positions
}

// Prediction is the output of a single Predict call.
type Prediction struct {
	TargetDate    time.Time
	PreviousDraws []history.Draw
	Tickets       []ticket.Ticket
	Scored        []ticketgen.ScoredTicket
	Strategy      ticketgen.Strategy
	// FilterRejected counts tickets dropped by the composition filters,
	// when a filter is configured.
	FilterRejected int
}

// Predict generates numTickets tickets for targetDate using the draws
// strictly before it. A zero targetDate means the day after the last draw
// in the dataset.
func (p *Predictor) Predict(targetDate time.Time, numTickets int, strategy ticketgen.Strategy) (*Prediction, error) {
	if targetDate.IsZero() {
		last, ok := p.history.Last()
		if !ok {
			return nil, ErrNoDrawData
		}
		targetDate = last.Date.AddDate(0, 0, 1)
	}
	previous := p.history.DrawsBefore(targetDate, p.lookback)
	if len(previous) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPriorDraws, targetDate.Format("2006-01-02"))
	}
	recent := p.history.RecentNumbers(targetDate, p.lookback)

	tickets := p.generator.GenerateTickets(recent, numTickets, strategy)
	rejected := 0
	if p.filter != nil {
		tickets, rejected = p.applyFilters(tickets, previous[0].Numbers)
	}

	return &Prediction{
		TargetDate:     targetDate,
		PreviousDraws:  previous,
		Tickets:        tickets,
		Scored:         p.generator.ScoreTickets(tickets, recent),
		Strategy:       strategy,
		FilterRejected: rejected,
	}, nil
}

// applyFilters gates tickets through the composition pipeline. If every
// ticket is rejected the unfiltered set is kept, so a strict filter config
// cannot silence a prediction entirely.
func (p *Predictor) applyFilters(tickets []ticket.Ticket, last ticket.Ticket) ([]ticket.Ticket, int) {
	passed := p.filter.Apply(tickets, last, false)
	rejected := len(tickets) - len(passed)
	if len(passed) == 0 && len(tickets) > 0 {
		log.Debug().Int("rejected", rejected).Msg("composition filters rejected every ticket; keeping unfiltered set")
		return tickets, 0
	}
	if rejected > 0 {
		log.Debug().Int("rejected", rejected).Int("kept", len(passed)).Msg("composition filters applied")
	}
	return passed, rejected
}

// Info is a human-readable snapshot of the predictor configuration.
type Info struct {
	MatrixName string
	Positions  string
	Lookback   int
	TotalDraws int
	FirstDraw  time.Time
	LastDraw   time.Time
}

func (p *Predictor) Info() Info {
	info := Info{
		MatrixName: p.matrix.Name(),
		Positions:  p.positions.String(),
		Lookback:   p.lookback,
		TotalDraws: p.history.Len(),
	}
	if first, last, ok := p.history.DateRange(); ok {
		info.FirstDraw = first
		info.LastDraw = last
	}
	return info
}
