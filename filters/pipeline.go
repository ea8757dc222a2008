package filters

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fantasy5/ticket"
)

// Gate names, in the fixed evaluation order of the pipeline. A rejected
// ticket is attributed to the first gate it fails.
const (
	GateOddEven     = "odd_even"
	GateHighLow     = "high_low"
	GateSumRange    = "sum_range"
	GateDecades     = "decades"
	GateConsecutive = "consecutive"
	GatePrime       = "prime"
	GateACValue     = "ac_value"
	GateDistance    = "distance"
	GateSameLast    = "same_last"
)

// GateOrder is the evaluation order of the pipeline.
var GateOrder = []string{
	GateOddEven, GateHighLow, GateSumRange, GateDecades, GateConsecutive,
	GatePrime, GateACValue, GateDistance, GateSameLast,
}

// Stats reports what one Apply call did with its batch.
type Stats struct {
	Input    int
	Output   int
	Rejected map[string]int
}

// PassRate is the fraction of the input batch that survived all gates.
func (s Stats) PassRate() float64 {
	if s.Input == 0 {
		return 0
	}
	return float64(s.Output) / float64(s.Input)
}

// TicketFilter is the multi-stage composition gate. Construct with a Config,
// then call Apply on candidate batches or FilterSingle on one ticket.
type TicketFilter struct {
	cfg   Config
	stats Stats
}

// NewTicketFilter builds a pipeline from cfg.
func NewTicketFilter(cfg Config) *TicketFilter {
	return &TicketFilter{cfg: cfg}
}

// Config returns the thresholds in use.
func (f *TicketFilter) Config() Config { return f.cfg }

// PassesOddEven checks the odd-count window.
func (f *TicketFilter) PassesOddEven(t ticket.Ticket) bool {
	odd := OddCount(t)
	return odd >= f.cfg.OddMin && odd <= f.cfg.OddMax
}

// PassesHighLow checks the low-half-count window.
func (f *TicketFilter) PassesHighLow(t ticket.Ticket) bool {
	low := LowCount(t, f.cfg.split())
	return low >= f.cfg.LowMin && low <= f.cfg.LowMax
}

// PassesSumRange checks the sum window.
func (f *TicketFilter) PassesSumRange(t ticket.Ticket) bool {
	s := Sum(t)
	return s >= f.cfg.SumMin && s <= f.cfg.SumMax
}

// PassesDecades checks the minimum decade spread.
func (f *TicketFilter) PassesDecades(t ticket.Ticket) bool {
	return DistinctDecades(t) >= f.cfg.DecadesMin
}

// PassesConsecutive checks the longest-run ceiling.
func (f *TicketFilter) PassesConsecutive(t ticket.Ticket) bool {
	return LongestRun(t) <= f.cfg.ConsecutiveMax
}

// PassesPrime checks the prime-count window.
func (f *TicketFilter) PassesPrime(t ticket.Ticket) bool {
	p := PrimeCount(t)
	return p >= f.cfg.PrimeMin && p <= f.cfg.PrimeMax
}

// PassesACValue checks the arithmetic-complexity window.
func (f *TicketFilter) PassesACValue(t ticket.Ticket) bool {
	ac := ACValue(t)
	return ac >= f.cfg.ACMin && ac <= f.cfg.ACMax
}

// PassesDistance checks the min-gap floor and the span window together.
func (f *TicketFilter) PassesDistance(t ticket.Ticket) bool {
	if MinGap(t) < f.cfg.MinGapFloor {
		return false
	}
	span := Span(t)
	return span >= f.cfg.SpanMin && span <= f.cfg.SpanMax
}

// PassesSameLast checks the carryover ceiling against the previous draw.
// With no previous draw the gate always passes.
func (f *TicketFilter) PassesSameLast(t, last ticket.Ticket) bool {
	if len(last) == 0 {
		return true
	}
	return SameAsLast(t, last) <= f.cfg.SameLastMax
}

type gate struct {
	name string
	pass func(f *TicketFilter, t, last ticket.Ticket) bool
}

var gates = []gate{
	{GateOddEven, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesOddEven(t) }},
	{GateHighLow, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesHighLow(t) }},
	{GateSumRange, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesSumRange(t) }},
	{GateDecades, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesDecades(t) }},
	{GateConsecutive, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesConsecutive(t) }},
	{GatePrime, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesPrime(t) }},
	{GateACValue, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesACValue(t) }},
	{GateDistance, func(f *TicketFilter, t, _ ticket.Ticket) bool { return f.PassesDistance(t) }},
	{GateSameLast, func(f *TicketFilter, t, last ticket.Ticket) bool { return f.PassesSameLast(t, last) }},
}

// FilterSingle runs every gate in order against one ticket, short-circuiting
// on the first failure.
func (f *TicketFilter) FilterSingle(t, last ticket.Ticket) bool {
	name, _ := f.firstFailure(t, last)
	return name == ""
}

// firstFailure returns the name of the first failing gate, or "" on pass.
func (f *TicketFilter) firstFailure(t, last ticket.Ticket) (string, bool) {
	for _, g := range gates {
		if !g.pass(f, t, last) {
			return g.name, false
		}
	}
	return "", true
}

// Apply filters a batch of tickets. With trackStats set, each rejection is
// attributed to exactly one gate and the batch statistics are retained for
// Stats/StatsReport.
func (f *TicketFilter) Apply(tickets []ticket.Ticket, last ticket.Ticket, trackStats bool) []ticket.Ticket {
	if trackStats {
		f.stats = Stats{Input: len(tickets), Rejected: make(map[string]int)}
	}
	var out []ticket.Ticket
	for _, t := range tickets {
		name, ok := f.firstFailure(t, last)
		if ok {
			out = append(out, t)
			continue
		}
		if trackStats {
			f.stats.Rejected[name]++
		}
	}
	if trackStats {
		f.stats.Output = len(out)
		log.Debug().Msgf("composition gate: %d in, %d out (%.1f%% pass)",
			f.stats.Input, f.stats.Output, f.stats.PassRate()*100)
	}
	return out
}

// Stats returns the statistics of the last tracked Apply call.
func (f *TicketFilter) Stats() Stats { return f.stats }

// StatsReport formats the last tracked batch as a human-readable table.
func (f *TicketFilter) StatsReport() string {
	if f.stats.Rejected == nil {
		return "No statistics available. Run Apply with trackStats."
	}
	var sb strings.Builder
	sb.WriteString("Filter Statistics:\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, "  Input tickets:   %d\n", f.stats.Input)
	sb.WriteString("  Rejected by:\n")
	for _, name := range GateOrder {
		fmt.Fprintf(&sb, "    %-14s %d\n", name+":", f.stats.Rejected[name])
	}
	fmt.Fprintf(&sb, "  Output tickets:  %d\n", f.stats.Output)
	if f.stats.Input > 0 {
		fmt.Fprintf(&sb, "  Pass rate:       %.1f%%\n", f.stats.PassRate()*100)
	}
	return sb.String()
}

// Capture is the historical pass statistic for one gate.
type Capture struct {
	Count int
	Rate  float64
}

// AllGates is the key of the full-conjunction entry in
// ValidateAgainstHistory's result.
const AllGates = "all_filters"

// ValidateAgainstHistory reports, per gate and for the full conjunction,
// what fraction of real historical draws would pass under cfg. It is the
// calibration mechanism for the default thresholds; the rates are reported,
// never fed back automatically.
func ValidateAgainstHistory(draws []ticket.Ticket, cfg Config) map[string]Capture {
	f := NewTicketFilter(cfg)
	counts := make(map[string]int, len(gates)+1)
	for _, draw := range draws {
		for _, g := range gates {
			if g.pass(f, draw, nil) {
				counts[g.name]++
			}
		}
		if f.FilterSingle(draw, nil) {
			counts[AllGates]++
		}
	}
	out := make(map[string]Capture, len(gates)+1)
	total := len(draws)
	for _, name := range append(append([]string{}, GateOrder...), AllGates) {
		rate := 0.0
		if total > 0 {
			rate = float64(counts[name]) / float64(total)
		}
		out[name] = Capture{Count: counts[name], Rate: rate}
	}
	return out
}
