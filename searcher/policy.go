package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT prepares the exploration numerator c^2*ln(N) for a parent whose explored
// children add up to N visits.
func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(average float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = average + sqrt(c^2*ln(N)/n)
	return average + math.Sqrt(u.numerator/n)
}
