package filters

import (
	"fmt"

	"github.com/domino14/fantasy5/ticket"
)

// AnalyzeTicket computes every metric in the bank for one ticket. The keys
// are stable and suitable for CSV export or diffing two candidates. Pass a
// non-empty last draw to include the historical-comparison metrics.
func AnalyzeTicket(t, last ticket.Ticket, poolMax int) map[string]float64 {
	result := map[string]float64{
		"odd_count":       float64(OddCount(t)),
		"even_count":      float64(EvenCount(t)),
		"high_count":      float64(HighCount(t, DefaultLowHighSplit)),
		"low_count":       float64(LowCount(t, DefaultLowHighSplit)),
		"prime_count":     float64(PrimeCount(t)),
		"composite_count": float64(CompositeCount(t)),

		"sum":            float64(Sum(t)),
		"average":        Average(t),
		"unit_sum":       float64(UnitSum(t)),
		"sum_parity":     float64(SumParity(t)),
		"root_sum":       float64(RootSum(t)),
		"tens_units_sum": float64(TensUnitsSum(t)),

		"longest_run":      float64(LongestRun(t)),
		"run_groups":       float64(RunGroups(t)),
		"longest_odd_run":  float64(LongestOddRun(t)),
		"longest_even_run": float64(LongestEvenRun(t)),
		"longest_unit_run": float64(LongestUnitRun(t)),

		"min_number":    float64(MinNumber(t)),
		"max_number":    float64(MaxNumber(t)),
		"span":          float64(Span(t)),
		"max_gap":       float64(MaxGap(t)),
		"min_gap":       float64(MinGap(t)),
		"avg_gap":       AvgGap(t),
		"distinct_gaps": float64(DistinctGaps(t)),

		"ac_value": float64(ACValue(t)),

		"distinct_units":         float64(DistinctUnits(t)),
		"unit_group_count":       float64(UnitGroupCount(t)),
		"high_units":             float64(HighUnitsCount(t)),
		"odd_units":              float64(OddUnitsCount(t)),
		"even_units":             float64(EvenUnitsCount(t)),
		"low_four_units":         float64(LowFourUnitsCount(t)),
		"units_123":              float64(Units123Count(t)),
		"successive_paired":      float64(SuccessivePairedUnitsCount(t)),
		"mixed_parity_digits":    float64(MixedParityDigitsCount(t)),
		"interchangeable_digits": float64(InterchangeableCount(t, poolMax)),
		"both_even_digits":       float64(BothEvenDigitsCount(t)),
		"both_odd_digits":        float64(BothOddDigitsCount(t)),
		"both_123_digits":        float64(Both123DigitsCount(t)),

		"decade_groups":    float64(DecadeGroupCount(t)),
		"distinct_decades": float64(DistinctDecades(t)),
	}

	for digit := 0; digit <= 9; digit++ {
		result[fmt.Sprintf("digit_%d_count", digit)] = float64(DigitCount(t, digit))
	}

	if len(last) > 0 {
		result["same_as_last"] = float64(SameAsLast(t, last))
		result["same_units_as_last"] = float64(SameUnitsAsLast(t, last))
	}
	return result
}
