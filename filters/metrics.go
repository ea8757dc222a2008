// Package filters holds the bank of numeric composition metrics over a
// ticket and the configurable accept/reject pipeline built from them. The
// metrics are pure functions; the pipeline combines a fixed subset of them
// with calibrated thresholds.
package filters

import (
	"sort"

	"github.com/domino14/fantasy5/ticket"
)

// DefaultLowHighSplit is the boundary of the low half of the 39-number
// pool: 1-19 low, 20-39 high.
const DefaultLowHighSplit = 19

var primes = map[int]bool{
	2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 17: true,
	19: true, 23: true, 29: true, 31: true, 37: true,
}

// IsPrime reports primality for pool-sized numbers.
func IsPrime(n int) bool { return primes[n] }

// OddCount counts odd numbers in the ticket.
func OddCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if n%2 == 1 {
			c++
		}
	}
	return c
}

// EvenCount counts even numbers in the ticket.
func EvenCount(t ticket.Ticket) int { return len(t) - OddCount(t) }

// HighCount counts numbers strictly above the split.
func HighCount(t ticket.Ticket, split int) int {
	c := 0
	for _, n := range t {
		if n > split {
			c++
		}
	}
	return c
}

// LowCount counts numbers at or below the split.
func LowCount(t ticket.Ticket, split int) int { return len(t) - HighCount(t, split) }

// PrimeCount counts prime numbers.
func PrimeCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if IsPrime(n) {
			c++
		}
	}
	return c
}

// CompositeCount counts composite numbers. 1 is neither prime nor composite.
func CompositeCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if n > 1 && !IsPrime(n) {
			c++
		}
	}
	return c
}

// Sum is the sum of the ticket's numbers.
func Sum(t ticket.Ticket) int {
	s := 0
	for _, n := range t {
		s += n
	}
	return s
}

// Average is the mean of the ticket's numbers.
func Average(t ticket.Ticket) float64 {
	if len(t) == 0 {
		return 0
	}
	return float64(Sum(t)) / float64(len(t))
}

// UnitSum sums the unit digit of every number.
func UnitSum(t ticket.Ticket) int {
	s := 0
	for _, n := range t {
		s += n % 10
	}
	return s
}

// SumParity is 0 when the sum is even, 1 when odd.
func SumParity(t ticket.Ticket) int { return Sum(t) % 2 }

// RootSum is the digital root of the sum: digits are re-summed until a
// single digit remains.
func RootSum(t ticket.Ticket) int {
	s := Sum(t)
	for s >= 10 {
		d := 0
		for s > 0 {
			d += s % 10
			s /= 10
		}
		s = d
	}
	return s
}

// TensUnitsSum is the sum of all tens digits plus all unit digits.
func TensUnitsSum(t ticket.Ticket) int {
	s := 0
	for _, n := range t {
		s += n/10 + n%10
	}
	return s
}

func longestRunWithStep(sorted []int, step int) int {
	if len(sorted) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+step {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// LongestRun is the length of the longest consecutive sequence.
func LongestRun(t ticket.Ticket) int {
	return longestRunWithStep(t.Sorted(), 1)
}

// RunGroups counts distinct consecutive groups of length >= 2.
func RunGroups(t ticket.Ticket) int {
	sorted := t.Sorted()
	groups := 0
	inGroup := false
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			if !inGroup {
				groups++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}
	return groups
}

// LongestOddRun is the longest run of odd numbers stepping by 2.
func LongestOddRun(t ticket.Ticket) int {
	var odds []int
	for _, n := range t {
		if n%2 == 1 {
			odds = append(odds, n)
		}
	}
	sort.Ints(odds)
	return longestRunWithStep(odds, 2)
}

// LongestEvenRun is the longest run of even numbers stepping by 2.
func LongestEvenRun(t ticket.Ticket) int {
	var evens []int
	for _, n := range t {
		if n%2 == 0 {
			evens = append(evens, n)
		}
	}
	sort.Ints(evens)
	return longestRunWithStep(evens, 2)
}

// LongestUnitRun is the longest consecutive run among the unit digits.
func LongestUnitRun(t ticket.Ticket) int {
	units := make([]int, len(t))
	for i, n := range t {
		units[i] = n % 10
	}
	sort.Ints(units)
	return longestRunWithStep(units, 1)
}

// MinNumber is the smallest number in the ticket.
func MinNumber(t ticket.Ticket) int {
	if len(t) == 0 {
		return 0
	}
	min := t[0]
	for _, n := range t[1:] {
		if n < min {
			min = n
		}
	}
	return min
}

// MaxNumber is the largest number in the ticket.
func MaxNumber(t ticket.Ticket) int {
	if len(t) == 0 {
		return 0
	}
	max := t[0]
	for _, n := range t[1:] {
		if n > max {
			max = n
		}
	}
	return max
}

// Span is the distance between the smallest and largest numbers.
func Span(t ticket.Ticket) int { return MaxNumber(t) - MinNumber(t) }

// Gaps returns the distances between adjacent numbers of the sorted ticket.
func Gaps(t ticket.Ticket) []int {
	sorted := t.Sorted()
	if len(sorted) < 2 {
		return nil
	}
	gaps := make([]int, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps[i-1] = sorted[i] - sorted[i-1]
	}
	return gaps
}

// MaxGap is the largest adjacent gap.
func MaxGap(t ticket.Ticket) int {
	gaps := Gaps(t)
	if len(gaps) == 0 {
		return 0
	}
	max := gaps[0]
	for _, g := range gaps[1:] {
		if g > max {
			max = g
		}
	}
	return max
}

// MinGap is the smallest adjacent gap. 0 means a duplicated number.
func MinGap(t ticket.Ticket) int {
	gaps := Gaps(t)
	if len(gaps) == 0 {
		return 0
	}
	min := gaps[0]
	for _, g := range gaps[1:] {
		if g < min {
			min = g
		}
	}
	return min
}

// AvgGap is the mean adjacent gap.
func AvgGap(t ticket.Ticket) float64 {
	gaps := Gaps(t)
	if len(gaps) == 0 {
		return 0
	}
	s := 0
	for _, g := range gaps {
		s += g
	}
	return float64(s) / float64(len(gaps))
}

// DistinctGaps counts unique adjacent gap sizes.
func DistinctGaps(t ticket.Ticket) int {
	seen := make(map[int]bool)
	for _, g := range Gaps(t) {
		seen[g] = true
	}
	return len(seen)
}

// ACValue is the arithmetic complexity: the count of distinct pairwise
// differences minus (k-1). An arithmetic progression scores 0; irregular
// spacing scores higher (max 6 for five numbers).
func ACValue(t ticket.Ticket) int {
	sorted := t.Sorted()
	diffs := make(map[int]bool)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			diffs[sorted[j]-sorted[i]] = true
		}
	}
	ac := len(diffs) - (len(sorted) - 1)
	if ac < 0 {
		return 0
	}
	return ac
}

// DistinctUnits counts unique unit digits.
func DistinctUnits(t ticket.Ticket) int {
	seen := make(map[int]bool)
	for _, n := range t {
		seen[n%10] = true
	}
	return len(seen)
}

// UnitGroupCount counts consecutive groups among the distinct unit digits.
func UnitGroupCount(t ticket.Ticket) int {
	seen := make(map[int]bool)
	for _, n := range t {
		seen[n%10] = true
	}
	if len(seen) == 0 {
		return 0
	}
	units := make([]int, 0, len(seen))
	for u := range seen {
		units = append(units, u)
	}
	sort.Ints(units)
	groups := 1
	for i := 1; i < len(units); i++ {
		if units[i] != units[i-1]+1 {
			groups++
		}
	}
	return groups
}

// HighUnitsCount counts numbers whose unit digit is 6-9.
func HighUnitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if n%10 >= 6 {
			c++
		}
	}
	return c
}

// OddUnitsCount counts numbers with an odd unit digit.
func OddUnitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if (n%10)%2 == 1 {
			c++
		}
	}
	return c
}

// EvenUnitsCount counts numbers with an even unit digit.
func EvenUnitsCount(t ticket.Ticket) int { return len(t) - OddUnitsCount(t) }

// LowFourUnitsCount counts numbers whose unit digit is 1-4.
func LowFourUnitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if u := n % 10; u >= 1 && u <= 4 {
			c++
		}
	}
	return c
}

// Units123Count counts numbers whose unit digit is 1, 2 or 3.
func Units123Count(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if u := n % 10; u >= 1 && u <= 3 {
			c++
		}
	}
	return c
}

// SuccessivePairedUnitsCount counts numbers whose two digits are numerically
// adjacent in either order (12, 21, 34, 43, ...).
func SuccessivePairedUnitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		tens, units := n/10, n%10
		if tens-units == 1 || units-tens == 1 {
			c++
		}
	}
	return c
}

// MixedParityDigitsCount counts numbers with one odd and one even digit.
func MixedParityDigitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if (n/10)%2 != (n%10)%2 {
			c++
		}
	}
	return c
}

// InterchangeableCount counts non-palindromic numbers whose reversed digits
// are also a valid pool number (e.g. 13 and 31).
func InterchangeableCount(t ticket.Ticket, poolMax int) int {
	c := 0
	for _, n := range t {
		tens, units := n/10, n%10
		if tens == units {
			continue
		}
		reversed := units*10 + tens
		if reversed >= 1 && reversed <= poolMax {
			c++
		}
	}
	return c
}

// BothEvenDigitsCount counts numbers where both digits are even.
func BothEvenDigitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if (n/10)%2 == 0 && (n%10)%2 == 0 {
			c++
		}
	}
	return c
}

// BothOddDigitsCount counts numbers where both digits are odd.
func BothOddDigitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		if (n/10)%2 == 1 && (n%10)%2 == 1 {
			c++
		}
	}
	return c
}

// Both123DigitsCount counts numbers where both digits are in {1,2,3}.
func Both123DigitsCount(t ticket.Ticket) int {
	c := 0
	for _, n := range t {
		tens, units := n/10, n%10
		if tens >= 1 && tens <= 3 && units >= 1 && units <= 3 {
			c++
		}
	}
	return c
}

// DigitCount counts appearances of one digit 0-9 across both digit
// positions of every number.
func DigitCount(t ticket.Ticket, digit int) int {
	c := 0
	for _, n := range t {
		if n/10 == digit {
			c++
		}
		if n%10 == digit {
			c++
		}
	}
	return c
}

// Decade returns the decade bucket of a number (0 for 1-9, 1 for 10-19...).
func Decade(n int) int { return n / 10 }

// DecadeGroupCount counts consecutive groups among the distinct decades.
func DecadeGroupCount(t ticket.Ticket) int {
	seen := make(map[int]bool)
	for _, n := range t {
		seen[Decade(n)] = true
	}
	if len(seen) == 0 {
		return 0
	}
	decades := make([]int, 0, len(seen))
	for d := range seen {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	groups := 1
	for i := 1; i < len(decades); i++ {
		if decades[i] != decades[i-1]+1 {
			groups++
		}
	}
	return groups
}

// DistinctDecades counts unique decades represented.
func DistinctDecades(t ticket.Ticket) int {
	seen := make(map[int]bool)
	for _, n := range t {
		seen[Decade(n)] = true
	}
	return len(seen)
}

// SameAsLast counts numbers shared with the previous draw.
func SameAsLast(t, last ticket.Ticket) int { return t.Matches(last) }

// SameUnitsAsLast counts numbers whose unit digit also appears among the
// previous draw's unit digits.
func SameUnitsAsLast(t, last ticket.Ticket) int {
	lastUnits := make(map[int]bool, len(last))
	for _, n := range last {
		lastUnits[n%10] = true
	}
	c := 0
	for _, n := range t {
		if lastUnits[n%10] {
			c++
		}
	}
	return c
}
