package stats

import (
	"math"
	"sort"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

// TrendOptions tunes the aggregation window.
type TrendOptions struct {
	// CutoffYear drops periods whose year prefix is earlier; zero keeps
	// every period.
	CutoffYear int
}

// Trend runs the two-group comparator for every (period, variable)
// combination and returns the chronologically ordered effect-size
// series. Pairs the comparator cannot compute are skipped without
// disturbing the rest; the series may therefore have gaps, which mean
// "insufficient data", never zero effect.
func Trend(ds *domain.Dataset, opts TrendOptions) []domain.TrendEntry {
	periods := ds.Periods()
	if opts.CutoffYear > 0 {
		kept := periods[:0:0]
		for _, p := range periods {
			if domain.PeriodYear(p) >= opts.CutoffYear {
				kept = append(kept, p)
			}
		}
		periods = kept
	}

	var entries []domain.TrendEntry
	for _, period := range periods {
		sub := ds.FilterPeriod(period)
		if len(sub.Records) == 0 {
			continue
		}
		for _, variable := range domain.NumericVariables() {
			cmp := Compare(sub, variable)
			if cmp == nil {
				continue
			}
			entry, ok := trendEntry(period, cmp)
			if !ok {
				continue
			}
			entries = append(entries, entry)
		}
	}

	// output order is a contract: period key ascending, label as the
	// tie-break
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := domain.PeriodKey(entries[i].Period), domain.PeriodKey(entries[j].Period)
		if ki != kj {
			return ki < kj
		}
		return entries[i].Period < entries[j].Period
	})
	return entries
}

// trendEntry derives the signed rank-biserial effect size from the
// plain normal approximation z = (U - n1*n2/2)/sqrt(n1*n2*(n1+n2+1)/12)
// and r = z/sqrt(n1+n2).
func trendEntry(period string, cmp *domain.Comparison) (domain.TrendEntry, bool) {
	n1 := float64(cmp.CityCount)
	n2 := float64(cmp.RegencyCount)
	sd := math.Sqrt(n1 * n2 * (n1 + n2 + 1) / 12)
	if sd == 0 {
		return domain.TrendEntry{}, false
	}
	z := (cmp.U - n1*n2/2) / sd
	r := z / math.Sqrt(n1+n2)
	rAbs := math.Abs(r)

	return domain.TrendEntry{
		Period:       period,
		Variable:     cmp.Variable,
		U:            cmp.U,
		PValue:       cmp.PValue,
		EffectSize:   cmp.EffectSize,
		Z:            z,
		R:            r,
		RAbs:         rAbs,
		Category:     domain.CategorizeEffect(rAbs),
		Significant:  cmp.Significant(),
		CityCount:    cmp.CityCount,
		RegencyCount: cmp.RegencyCount,
	}, true
}
