package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

// Correlate computes the Spearman rank-correlation matrix and the
// matching two-sided p-value matrix over the canonical numeric
// variables present in the dataset. Only complete cases (rows with no
// missing value among those variables) contribute, and a variable that
// is constant across them is unusable. With fewer than two usable
// variables or zero complete cases the result is empty.
func Correlate(ds *domain.Dataset) domain.CorrelationMatrix {
	var vars []domain.Variable
	for _, v := range domain.NumericVariables() {
		if ds.HasVariable(v) {
			vars = append(vars, v)
		}
	}
	if len(vars) < 2 {
		return domain.CorrelationMatrix{}
	}

	// complete-case column extraction
	columns := make([][]float64, len(vars))
	for _, r := range ds.Records {
		row := make([]float64, len(vars))
		complete := true
		for i, v := range vars {
			val, ok := r.Value(v)
			if !ok {
				complete = false
				break
			}
			row[i] = val
		}
		if !complete {
			continue
		}
		for i := range vars {
			columns[i] = append(columns[i], row[i])
		}
	}
	n := len(columns[0])
	if n == 0 {
		return domain.CorrelationMatrix{}
	}

	// a column that is constant across the complete cases has zero rank
	// variance and no defined correlation; it is unusable like an absent
	// column
	keptVars := vars[:0:0]
	keptCols := columns[:0:0]
	for i, col := range columns {
		if isConstant(col) {
			continue
		}
		keptVars = append(keptVars, vars[i])
		keptCols = append(keptCols, col)
	}
	vars, columns = keptVars, keptCols
	if len(vars) < 2 {
		return domain.CorrelationMatrix{}
	}

	ranked := make([][]float64, len(vars))
	for i := range columns {
		ranked[i] = midranks(columns[i])
	}

	coeffs := make([][]float64, len(vars))
	pvals := make([][]float64, len(vars))
	for i := range vars {
		coeffs[i] = make([]float64, len(vars))
		pvals[i] = make([]float64, len(vars))
		coeffs[i][i] = 1.0
		pvals[i][i] = 0.0
	}
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			rho := stat.Correlation(ranked[i], ranked[j], nil)
			p := spearmanPValue(rho, n)
			coeffs[i][j], coeffs[j][i] = rho, rho
			pvals[i][j], pvals[j][i] = p, p
		}
	}

	return domain.CorrelationMatrix{
		Variables:    vars,
		Coefficients: coeffs,
		PValues:      pvals,
	}
}

func isConstant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// spearmanPValue is the standard t approximation for the two-sided
// significance of a rank correlation over n complete cases.
func spearmanPValue(rho float64, n int) float64 {
	if n < 3 {
		return 1.0
	}
	if math.Abs(rho) >= 1 {
		return 0.0
	}
	df := float64(n - 2)
	t := rho * math.Sqrt(df/(1-rho*rho))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}
