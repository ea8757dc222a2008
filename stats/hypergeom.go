package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// MatchProbability returns the probability that a uniformly random ticket of
// pickSize numbers drawn from a pool of poolSize matches exactly `matches` of
// the winning numbers. This is the hypergeometric pmf with the winning draw
// as the success population.
func MatchProbability(matches, pickSize, poolSize int) float64 {
	if matches < 0 || matches > pickSize || pickSize > poolSize {
		return 0
	}
	denom := combin.Binomial(poolSize, pickSize)
	if denom == 0 {
		return 0
	}
	num := binomialOrZero(pickSize, matches) *
		binomialOrZero(poolSize-pickSize, pickSize-matches)
	return float64(num) / float64(denom)
}

// ExpectedBestMatch returns the expected best match count across numTickets
// independent random tickets. Used as the chance baseline when judging
// whether a generation strategy beats blind luck.
func ExpectedBestMatch(numTickets, pickSize, poolSize int) float64 {
	if numTickets <= 0 {
		return 0
	}
	// E[best] = sum over k>=1 of P(best >= k),
	// P(best >= k) = 1 - P(single < k)^numTickets.
	expected := 0.0
	cumBelow := 0.0
	for k := 1; k <= pickSize; k++ {
		cumBelow += MatchProbability(k-1, pickSize, poolSize)
		expected += 1 - math.Pow(cumBelow, float64(numTickets))
	}
	return expected
}

func binomialOrZero(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	return combin.Binomial(n, k)
}
