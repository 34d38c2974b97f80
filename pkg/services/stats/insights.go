package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

// InsightOptions names the headline variables the synthesizer reports on.
type InsightOptions struct {
	// HeadlineVariable drives the group-gap and top-unit insights.
	HeadlineVariable domain.Variable
	// DispersionVariable drives the max/min dispersion insight.
	DispersionVariable domain.Variable
}

// DefaultInsightOptions mirrors the dashboard's headline cards.
func DefaultInsightOptions() InsightOptions {
	return InsightOptions{
		HeadlineVariable:   domain.ActiveCooperatives,
		DispersionVariable: domain.MicroEnterprises,
	}
}

// Insights derives up to four narrative-ready facts from the dataset.
// Each insight is independently optional: missing inputs for one never
// suppress the others, and the dataset is only read.
func Insights(ds *domain.Dataset, opts InsightOptions) []domain.Insight {
	if opts.HeadlineVariable == "" {
		opts.HeadlineVariable = domain.ActiveCooperatives
	}
	if opts.DispersionVariable == "" {
		opts.DispersionVariable = domain.MicroEnterprises
	}

	var insights []domain.Insight

	if in, ok := strongestCorrelation(ds); ok {
		insights = append(insights, in)
	}
	if cmp := Compare(ds, opts.HeadlineVariable); cmp != nil && cmp.Significant() {
		insights = append(insights, domain.Insight{
			Kind: domain.SignificantGroupGap,
			Summary: fmt.Sprintf("%s in %s (p=%.3f)",
				directionText(cmp.Direction), opts.HeadlineVariable.Label(), cmp.PValue),
		})
	}
	if top := TopRegions(ds, opts.HeadlineVariable, 1); len(top) > 0 {
		insights = append(insights, domain.Insight{
			Kind: domain.TopUnit,
			Summary: fmt.Sprintf("%s leads in %s",
				top[0].Region, opts.HeadlineVariable.Label()),
		})
	}
	if ratio, ok := dispersionRatio(ds, opts.DispersionVariable); ok {
		insights = append(insights, domain.Insight{
			Kind: domain.DispersionRatio,
			Summary: fmt.Sprintf("%.1fx gap in %s between the highest and lowest region",
				ratio, opts.DispersionVariable.Label()),
		})
	}

	return insights
}

func strongestCorrelation(ds *domain.Dataset) (domain.Insight, bool) {
	matrix := Correlate(ds)
	if matrix.Empty() {
		return domain.Insight{}, false
	}

	best := -1.0
	var vi, vj domain.Variable
	var rho float64
	for i := 0; i < len(matrix.Variables); i++ {
		for j := i + 1; j < len(matrix.Variables); j++ {
			c := matrix.Coefficients[i][j]
			if math.Abs(c) > best {
				best = math.Abs(c)
				vi, vj = matrix.Variables[i], matrix.Variables[j]
				rho = c
			}
		}
	}
	if best < 0 {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Kind: domain.StrongestCorrelation,
		Summary: fmt.Sprintf("Strongest correlation: %s vs %s (rho=%.3f)",
			vi.Label(), vj.Label(), rho),
	}, true
}

func directionText(d domain.Direction) string {
	if d == domain.CityGreater {
		return "Cities exceed regencies"
	}
	return "Regencies exceed cities"
}

// TopRegions ranks regions by descending value of a variable, dropping
// records without an observation. Ties break on region name so the
// ranking is deterministic.
func TopRegions(ds *domain.Dataset, variable domain.Variable, n int) []domain.RegionRank {
	if n <= 0 || !ds.HasVariable(variable) {
		return nil
	}
	var ranks []domain.RegionRank
	for _, r := range ds.Records {
		if val, ok := r.Value(variable); ok {
			ranks = append(ranks, domain.RegionRank{Region: r.Region, Kind: r.Kind, Value: val})
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Value != ranks[j].Value {
			return ranks[i].Value > ranks[j].Value
		}
		return ranks[i].Region < ranks[j].Region
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// dispersionRatio is max/min over the variable's observations. It is
// absent, not infinite, when no data exists or the minimum is not
// strictly positive.
func dispersionRatio(ds *domain.Dataset, variable domain.Variable) (float64, bool) {
	if !ds.HasVariable(variable) {
		return 0, false
	}
	first := true
	var minVal, maxVal float64
	for _, r := range ds.Records {
		val, ok := r.Value(variable)
		if !ok {
			continue
		}
		if first {
			minVal, maxVal = val, val
			first = false
			continue
		}
		if val < minVal {
			minVal = val
		}
		if val > maxVal {
			maxVal = val
		}
	}
	if first || minVal <= 0 {
		return 0, false
	}
	return maxVal / minVal, true
}
