package filters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/fantasy5/ticket"
)

func TestBasicComposition(t *testing.T) {
	tk := ticket.Ticket{3, 8, 15, 22, 37}
	assert.Equal(t, 3, OddCount(tk))
	assert.Equal(t, 2, EvenCount(tk))
	assert.Equal(t, 2, HighCount(tk, DefaultLowHighSplit))
	assert.Equal(t, 3, LowCount(tk, DefaultLowHighSplit))
	assert.Equal(t, 2, PrimeCount(tk))     // 3, 37
	assert.Equal(t, 3, CompositeCount(tk)) // 8, 15, 22
	// 1 is neither prime nor composite.
	assert.Equal(t, 0, PrimeCount(ticket.Ticket{1}))
	assert.Equal(t, 0, CompositeCount(ticket.Ticket{1}))
}

func TestSumMetrics(t *testing.T) {
	tk := ticket.Ticket{5, 10, 20, 30, 35}
	assert.Equal(t, 100, Sum(tk))
	assert.Equal(t, 20.0, Average(tk))
	assert.Equal(t, 0, SumParity(tk))
	assert.Equal(t, 1, RootSum(tk)) // 100 -> 1
	assert.Equal(t, 10, UnitSum(tk))
	assert.Equal(t, 4, RootSum(ticket.Ticket{1, 2, 3, 10, 15})) // 31 -> 4
}

func TestRuns(t *testing.T) {
	assert.Equal(t, 3, LongestRun(ticket.Ticket{4, 5, 6, 20, 30}))
	assert.Equal(t, 1, LongestRun(ticket.Ticket{2, 10, 20, 30, 38}))
	assert.Equal(t, 2, RunGroups(ticket.Ticket{4, 5, 20, 21, 30}))
	assert.Equal(t, 0, RunGroups(ticket.Ticket{2, 10, 20, 30, 38}))
	// Odd runs step by two: 3,5,7 is one run of three.
	assert.Equal(t, 3, LongestOddRun(ticket.Ticket{3, 5, 7, 10, 20}))
	assert.Equal(t, 2, LongestEvenRun(ticket.Ticket{3, 5, 7, 10, 12}))
	// Unit digits 1,2,3 run regardless of tens digits.
	assert.Equal(t, 3, LongestUnitRun(ticket.Ticket{11, 22, 33, 5, 9}))
}

func TestGapMetrics(t *testing.T) {
	tk := ticket.Ticket{1, 5, 12, 22, 35}
	assert.Equal(t, []int{4, 7, 10, 13}, Gaps(tk))
	assert.Equal(t, 13, MaxGap(tk))
	assert.Equal(t, 4, MinGap(tk))
	assert.Equal(t, 8.5, AvgGap(tk))
	assert.Equal(t, 4, DistinctGaps(tk))
	assert.Equal(t, 34, Span(tk))
}

func TestACValue(t *testing.T) {
	// An arithmetic progression has AC 0.
	assert.Equal(t, 0, ACValue(ticket.Ticket{5, 10, 15, 20, 25}))
	// Irregular spacing drives AC up; the max for five numbers is 6.
	assert.Equal(t, 6, ACValue(ticket.Ticket{1, 2, 5, 11, 22}))
	assert.Equal(t, 2, ACValue(ticket.Ticket{5, 10, 20, 30, 35}))
}

func TestUnitDigitMetrics(t *testing.T) {
	tk := ticket.Ticket{12, 21, 23, 34, 9}
	assert.Equal(t, 5, DistinctUnits(tk)) // 2,1,3,4,9
	assert.Equal(t, 2, UnitGroupCount(tk))
	assert.Equal(t, 1, HighUnitsCount(tk)) // only 9
	assert.Equal(t, 3, OddUnitsCount(tk))  // 21, 23, 9
	assert.Equal(t, 2, EvenUnitsCount(tk))
	assert.Equal(t, 4, LowFourUnitsCount(tk))
	assert.Equal(t, 3, Units123Count(tk))
	// 12, 21, 23, 34 are successive digit pairs; 9 is not.
	assert.Equal(t, 4, SuccessivePairedUnitsCount(tk))
	assert.Equal(t, 3, Both123DigitsCount(tk)) // 12, 21, 23
}

func TestDigitStructure(t *testing.T) {
	assert.Equal(t, 2, MixedParityDigitsCount(ticket.Ticket{12, 21, 8, 24, 33}))
	// 13 <-> 31 both valid in a 39 pool; 19 reversed is 91; 11 is palindromic.
	assert.Equal(t, 1, InterchangeableCount(ticket.Ticket{13, 19, 11}, 39))
	assert.Equal(t, 3, BothEvenDigitsCount(ticket.Ticket{20, 24, 13, 35, 8}))
	assert.Equal(t, 2, BothOddDigitsCount(ticket.Ticket{11, 39, 24, 30, 6}))
	assert.Equal(t, 3, DigitCount(ticket.Ticket{3, 13, 35, 22, 8}, 3))
}

func TestDecadeMetrics(t *testing.T) {
	tk := ticket.Ticket{5, 12, 18, 25, 39}
	assert.Equal(t, 4, DistinctDecades(tk))
	assert.Equal(t, 1, DecadeGroupCount(tk)) // decades 0-3 are contiguous
	assert.Equal(t, 2, DecadeGroupCount(ticket.Ticket{5, 8, 25, 28, 39}))
}

func TestHistoricalComparison(t *testing.T) {
	last := ticket.Ticket{3, 14, 25, 31, 38}
	assert.Equal(t, 2, SameAsLast(ticket.Ticket{3, 9, 25, 30, 39}, last))
	// Unit digits of last: 3,4,5,1,8.
	assert.Equal(t, 3, SameUnitsAsLast(ticket.Ticket{13, 24, 6, 10, 21}, last))
}

func TestFilterSingleOrderAndShortCircuit(t *testing.T) {
	f := NewTicketFilter(DefaultConfig())

	// Balanced parity and split, sum 103, four decades, AC 6, span 33.
	assert.True(t, f.FilterSingle(ticket.Ticket{4, 11, 23, 28, 37}, nil))

	// All-odd fails the very first gate.
	name, ok := f.firstFailure(ticket.Ticket{1, 3, 5, 7, 9}, nil)
	assert.False(t, ok)
	assert.Equal(t, GateOddEven, name)

	// Passes parity and split gates, then trips on an oversized sum.
	name, _ = f.firstFailure(ticket.Ticket{18, 19, 37, 38, 39}, nil)
	assert.Equal(t, GateSumRange, name)
}

func TestApplyWithStats(t *testing.T) {
	f := NewTicketFilter(DefaultConfig())
	batch := []ticket.Ticket{
		{4, 11, 23, 28, 37},  // passes
		{1, 3, 5, 7, 9},      // odd_even
		{18, 19, 37, 38, 39}, // sum_range
		{2, 9, 13, 28, 35},   // passes
	}
	out := f.Apply(batch, nil, true)
	assert.Len(t, out, 2)

	stats := f.Stats()
	assert.Equal(t, 4, stats.Input)
	assert.Equal(t, 2, stats.Output)
	assert.Equal(t, 1, stats.Rejected[GateOddEven])
	assert.Equal(t, 1, stats.Rejected[GateSumRange])
	assert.Equal(t, 0.5, stats.PassRate())
	assert.Contains(t, f.StatsReport(), "Pass rate")

	// Every reject is attributed to exactly one gate.
	total := 0
	for _, c := range stats.Rejected {
		total += c
	}
	assert.Equal(t, stats.Input-stats.Output, total)
}

func TestSameLastGate(t *testing.T) {
	f := NewTicketFilter(DefaultConfig())
	passing := ticket.Ticket{4, 11, 23, 28, 37}
	// Identical to the last draw: five shared numbers exceeds the cap.
	assert.False(t, f.FilterSingle(passing, passing))
	// No previous draw: the gate cannot reject.
	assert.True(t, f.FilterSingle(passing, nil))
}

func TestValidateAgainstHistory(t *testing.T) {
	draws := []ticket.Ticket{
		{4, 11, 23, 28, 37}, // passes everything
		{3, 10, 22, 29, 36}, // fails only the AC gate
		{1, 3, 5, 7, 9},     // fails odd_even and more
	}
	report := ValidateAgainstHistory(draws, DefaultConfig())
	assert.Equal(t, 2, report[GateOddEven].Count)
	assert.InDelta(t, 2.0/3.0, report[GateOddEven].Rate, 1e-9)
	assert.Equal(t, 1, report[AllGates].Count)
	// Every gate has an entry even when nothing failed it.
	for _, name := range GateOrder {
		_, present := report[name]
		assert.True(t, present, name)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	doc := "sum_min: 60\nsum_max: 120\n"
	cfg, err := LoadConfig(strings.NewReader(doc))
	assert.NoError(t, err)
	assert.Equal(t, 60, cfg.SumMin)
	assert.Equal(t, 120, cfg.SumMax)
	// Untouched fields keep their defaults.
	assert.Equal(t, 2, cfg.OddMin)
}

func TestAnalyzeTicket(t *testing.T) {
	m := AnalyzeTicket(ticket.Ticket{5, 10, 20, 30, 35}, ticket.Ticket{5, 11, 21, 31, 36}, 39)
	assert.Equal(t, 100.0, m["sum"])
	assert.Equal(t, 2.0, m["ac_value"])
	assert.Equal(t, 1.0, m["same_as_last"])
	_, hasDigit := m["digit_0_count"]
	assert.True(t, hasDigit)
}
