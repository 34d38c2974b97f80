package analysis

import (
	"context"
	"fmt"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/services/stats"
	"github.com/de-tools/coop-atlas/pkg/services/survey"
)

// Explorer is the analysis façade the serving surfaces talk to: it
// resolves a named dataset snapshot, applies the optional period
// restriction and runs the requested statistic. All computation is a
// pure function of the snapshot, so concurrent requests need no
// coordination.
type Explorer interface {
	Periods(ctx context.Context, dataset string) ([]string, error)
	Correlations(ctx context.Context, dataset, period string) (domain.CorrelationMatrix, error)
	Compare(ctx context.Context, dataset string, variable domain.Variable, period string) (*domain.Comparison, error)
	Trend(ctx context.Context, dataset string, cutoffYear int) ([]domain.TrendEntry, error)
	Insights(ctx context.Context, dataset, period string) ([]domain.Insight, error)
	TopRegions(ctx context.Context, dataset string, variable domain.Variable, period string, n int) ([]domain.RegionRank, error)
}

type explorer struct {
	datasets survey.Explorer
	cfg      Config
}

func NewExplorer(datasets survey.Explorer, cfg Config) Explorer {
	return &explorer{datasets: datasets, cfg: cfg}
}

func (e *explorer) snapshot(ctx context.Context, dataset, period string) (*domain.Dataset, error) {
	ds, err := e.datasets.GetDataset(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if period != "" {
		ds = ds.FilterPeriod(period)
	}
	return ds, nil
}

func (e *explorer) Periods(ctx context.Context, dataset string) ([]string, error) {
	ds, err := e.datasets.GetDataset(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return ds.Periods(), nil
}

func (e *explorer) Correlations(ctx context.Context, dataset, period string) (domain.CorrelationMatrix, error) {
	ds, err := e.snapshot(ctx, dataset, period)
	if err != nil {
		return domain.CorrelationMatrix{}, err
	}
	return stats.Correlate(ds), nil
}

func (e *explorer) Compare(ctx context.Context, dataset string, variable domain.Variable, period string) (*domain.Comparison, error) {
	if !validVariable(variable) {
		return nil, fmt.Errorf("unknown variable %q", variable)
	}
	ds, err := e.snapshot(ctx, dataset, period)
	if err != nil {
		return nil, err
	}
	return stats.Compare(ds, variable), nil
}

func (e *explorer) Trend(ctx context.Context, dataset string, cutoffYear int) ([]domain.TrendEntry, error) {
	ds, err := e.datasets.GetDataset(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if cutoffYear == 0 {
		cutoffYear = e.cfg.CutoffYear
	}
	return stats.Trend(ds, stats.TrendOptions{CutoffYear: cutoffYear}), nil
}

func (e *explorer) Insights(ctx context.Context, dataset, period string) ([]domain.Insight, error) {
	ds, err := e.snapshot(ctx, dataset, period)
	if err != nil {
		return nil, err
	}
	return stats.Insights(ds, e.cfg.insightOptions()), nil
}

func (e *explorer) TopRegions(ctx context.Context, dataset string, variable domain.Variable, period string, n int) ([]domain.RegionRank, error) {
	if !validVariable(variable) {
		return nil, fmt.Errorf("unknown variable %q", variable)
	}
	ds, err := e.snapshot(ctx, dataset, period)
	if err != nil {
		return nil, err
	}
	return stats.TopRegions(ds, variable, n), nil
}

func validVariable(v domain.Variable) bool {
	for _, nv := range domain.NumericVariables() {
		if nv == v {
			return true
		}
	}
	return false
}
