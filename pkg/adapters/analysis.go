package adapters

import (
	"github.com/de-tools/coop-atlas/pkg/models/api"
	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

func MapCorrelationMatrixDomainToApi(m domain.CorrelationMatrix) api.CorrelationMatrix {
	out := api.CorrelationMatrix{
		Coefficients: m.Coefficients,
		PValues:      m.PValues,
	}
	for _, v := range m.Variables {
		out.Variables = append(out.Variables, string(v))
	}
	return out
}

func MapComparisonDomainToApi(c domain.Comparison) api.Comparison {
	return api.Comparison{
		Variable:      string(c.Variable),
		Label:         c.Variable.Label(),
		U:             c.U,
		PValue:        c.PValue,
		EffectSize:    c.EffectSize,
		Direction:     string(c.Direction),
		Significant:   c.Significant(),
		CityMedian:    c.CityMedian,
		RegencyMedian: c.RegencyMedian,
		CityCount:     c.CityCount,
		RegencyCount:  c.RegencyCount,
	}
}

func MapTrendEntryDomainToApi(e domain.TrendEntry) api.TrendEntry {
	return api.TrendEntry{
		Period:       e.Period,
		Variable:     string(e.Variable),
		Label:        e.Variable.Label(),
		U:            e.U,
		PValue:       e.PValue,
		EffectSize:   e.EffectSize,
		Z:            e.Z,
		R:            e.R,
		RAbs:         e.RAbs,
		Category:     string(e.Category),
		Significant:  e.Significant,
		CityCount:    e.CityCount,
		RegencyCount: e.RegencyCount,
	}
}

func MapInsightDomainToApi(in domain.Insight) api.Insight {
	return api.Insight{
		Kind:    string(in.Kind),
		Summary: in.Summary,
	}
}

func MapRegionRankDomainToApi(r domain.RegionRank) api.RegionRank {
	return api.RegionRank{
		Region: r.Region,
		Kind:   string(r.Kind),
		Value:  r.Value,
	}
}
