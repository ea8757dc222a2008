package stats

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed Z-value for a confidence interval given as a
// percentage from 0 to 100.
func ZVal(confidenceInterval float64) float64 {
	area := (1 + (confidenceInterval / 100)) / 2
	return stdNormal.Quantile(area)
}
