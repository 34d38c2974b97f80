package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

// exactLimit is the largest per-group size for which the exact U
// distribution is enumerated; beyond it (or with ties) the corrected
// normal approximation is used.
const exactLimit = 8

// Compare runs the Mann–Whitney U test between the City and Regency
// subgroups on one variable, dropping missing values per group. It
// returns nil when either subgroup has fewer than two observations or
// the dataset never carried the column: "not computable" is an absent
// result, not an error and not a zero-filled record.
func Compare(ds *domain.Dataset, variable domain.Variable) *domain.Comparison {
	if !ds.HasVariable(variable) {
		return nil
	}

	var city, regency []float64
	for _, r := range ds.Records {
		val, ok := r.Value(variable)
		if !ok {
			continue
		}
		switch r.Kind {
		case domain.City:
			city = append(city, val)
		case domain.Regency:
			regency = append(regency, val)
		}
	}
	if len(city) < 2 || len(regency) < 2 {
		return nil
	}

	u, p := uTest(city, regency)
	cles := u / float64(len(city)*len(regency))

	direction := domain.RegencyGreater
	if cles > 0.5 {
		direction = domain.CityGreater
	}

	return &domain.Comparison{
		Variable:      variable,
		U:             u,
		PValue:        p,
		EffectSize:    cles,
		Direction:     direction,
		CityMedian:    median(city),
		RegencyMedian: median(regency),
		CityCount:     len(city),
		RegencyCount:  len(regency),
	}
}

// uTest returns the first sample's U statistic and the two-sided
// p-value. Ranks follow the midrank convention, so ties contribute
// half-credit to U.
func uTest(a, b []float64) (u, p float64) {
	n1, n2 := len(a), len(b)
	combined := make([]float64, 0, n1+n2)
	combined = append(combined, a...)
	combined = append(combined, b...)
	ranks := midranks(combined)

	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	u = r1 - float64(n1*(n1+1))/2

	ties := tieCorrection(combined)
	if n1 <= exactLimit && n2 <= exactLimit && ties == 0 {
		return u, exactPValue(u, n1, n2)
	}
	return u, approxPValue(u, n1, n2, ties)
}

// exactPValue enumerates the null distribution of U. The distribution
// is symmetric about n1*n2/2, so the two-sided p doubles the smaller
// tail.
func exactPValue(u float64, n1, n2 int) float64 {
	lower := math.Min(u, float64(n1*n2)-u)
	counts := uDistribution(n1, n2)
	var tail, total float64
	for k, c := range counts {
		total += c
		if float64(k) <= lower {
			tail += c
		}
	}
	p := 2 * tail / total
	if p > 1 {
		p = 1
	}
	return p
}

// uDistribution counts arrangements per U value via the standard
// recurrence c(m,n,u) = c(m-1,n,u-n) + c(m,n-1,u).
func uDistribution(n1, n2 int) []float64 {
	maxU := n1 * n2
	prev := make([][]float64, n2+1)
	for n := 0; n <= n2; n++ {
		prev[n] = make([]float64, maxU+1)
		prev[n][0] = 1 // zero X's always give U = 0
	}
	for m := 1; m <= n1; m++ {
		cur := make([][]float64, n2+1)
		cur[0] = make([]float64, maxU+1)
		cur[0][0] = 1
		for n := 1; n <= n2; n++ {
			cur[n] = make([]float64, maxU+1)
			for u := 0; u <= maxU; u++ {
				c := cur[n-1][u]
				if u >= n {
					c += prev[n][u-n]
				}
				cur[n][u] = c
			}
		}
		prev = cur
	}
	return prev[n2]
}

// approxPValue is the normal approximation with tie correction and a
// 0.5 continuity correction toward the mean.
func approxPValue(u float64, n1, n2 int, ties float64) float64 {
	fn1, fn2 := float64(n1), float64(n2)
	n := fn1 + fn2
	mu := fn1 * fn2 / 2
	variance := fn1 * fn2 / 12 * ((n + 1) - ties/(n*(n-1)))
	if variance <= 0 {
		return 1.0
	}
	diff := math.Abs(u-mu) - 0.5
	if diff < 0 {
		diff = 0
	}
	z := diff / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(z)
	if p > 1 {
		p = 1
	}
	return p
}
