package domain

// SignificanceLevel is the fixed two-sided threshold used throughout.
const SignificanceLevel = 0.05

// CorrelationMatrix pairs Spearman coefficients with their two-sided
// p-values over the same variable ordering. Both matrices are square
// and symmetric; the coefficient diagonal is 1.0 and the p-value
// diagonal is 0.0 by convention (untested).
type CorrelationMatrix struct {
	Variables    []Variable
	Coefficients [][]float64
	PValues      [][]float64
}

// Empty reports the degenerate-input case: fewer than two usable
// variables or no complete-case rows.
func (m CorrelationMatrix) Empty() bool {
	return len(m.Variables) == 0
}

// At returns the coefficient and p-value for a variable pair.
func (m CorrelationMatrix) At(vi, vj Variable) (rho, p float64, ok bool) {
	i, j := -1, -1
	for idx, v := range m.Variables {
		if v == vi {
			i = idx
		}
		if v == vj {
			j = idx
		}
	}
	if i < 0 || j < 0 {
		return 0, 0, false
	}
	return m.Coefficients[i][j], m.PValues[i][j], true
}

// Direction tells which group a comparison favors.
type Direction string

const (
	CityGreater    Direction = "CityGreater"
	RegencyGreater Direction = "RegencyGreater"
)

// Comparison is a Mann–Whitney City-vs-Regency result for one variable.
// U is the City group's statistic; EffectSize is the common-language
// effect size U/(n_city*n_regency), the probability that a random City
// value exceeds a random Regency value.
type Comparison struct {
	Variable      Variable
	U             float64
	PValue        float64
	EffectSize    float64
	Direction     Direction
	CityMedian    float64
	RegencyMedian float64
	CityCount     int
	RegencyCount  int
}

// Significant reports whether the two-sided p-value clears the fixed
// threshold.
func (c Comparison) Significant() bool {
	return c.PValue < SignificanceLevel
}

// EffectCategory buckets the absolute rank-biserial effect size.
type EffectCategory string

const (
	EffectNegligible EffectCategory = "negligible"
	EffectSmall      EffectCategory = "small"
	EffectMedium     EffectCategory = "medium"
	EffectLarge      EffectCategory = "large"
)

// CategorizeEffect maps |r| onto the 0.10 / 0.30 / 0.50 boundaries.
func CategorizeEffect(rAbs float64) EffectCategory {
	switch {
	case rAbs < 0.10:
		return EffectNegligible
	case rAbs < 0.30:
		return EffectSmall
	case rAbs < 0.50:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// TrendEntry is one (period, variable) point of the effect-size trend.
// R is the signed rank-biserial effect size z/sqrt(n1+n2); the series
// is ordered by PeriodKey and may have gaps where a group was too small.
type TrendEntry struct {
	Period       string
	Variable     Variable
	U            float64
	PValue       float64
	EffectSize   float64
	Z            float64
	R            float64
	RAbs         float64
	Category     EffectCategory
	Significant  bool
	CityCount    int
	RegencyCount int
}

// InsightKind tags the fact a narrative insight reports.
type InsightKind string

const (
	StrongestCorrelation InsightKind = "StrongestCorrelation"
	SignificantGroupGap  InsightKind = "SignificantGroupGap"
	TopUnit              InsightKind = "TopUnit"
	DispersionRatio      InsightKind = "DispersionRatio"
)

// Insight is a short natural-language-ready fact derived from the
// statistical artifacts. Recomputed per call, never cached.
type Insight struct {
	Kind    InsightKind
	Summary string
}

// RegionRank is one row of a descending top-N ranking on a variable.
type RegionRank struct {
	Region string
	Kind   RegionKind
	Value  float64
}
