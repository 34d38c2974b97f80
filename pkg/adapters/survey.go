package adapters

import (
	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/models/store"
)

// MapDatasetToStoreValues flattens a dataset into long-format rows plus
// the carried-column list. Missing observations produce no row, which
// keeps the "value missing" state round-trippable. A record with no
// observations at all leaves no trace: stored snapshots only know
// regions and periods that carried at least one value.
func MapDatasetToStoreValues(ds *domain.Dataset) ([]string, []store.SurveyValue) {
	columns := make([]string, 0, len(ds.Variables))
	for _, v := range ds.Variables {
		columns = append(columns, string(v))
	}

	var values []store.SurveyValue
	for _, r := range ds.Records {
		for _, v := range ds.Variables {
			val, ok := r.Value(v)
			if !ok {
				continue
			}
			values = append(values, store.SurveyValue{
				Region:   r.Region,
				Kind:     string(r.Kind),
				Period:   r.Period,
				Variable: string(v),
				Value:    val,
			})
		}
	}
	return columns, values
}

// MapStoreValuesToDataset rebuilds a dataset from long-format rows,
// grouping by (region, period) in row order.
func MapStoreValuesToDataset(columns []string, values []store.SurveyValue) *domain.Dataset {
	ds := &domain.Dataset{}
	carried := make(map[domain.Variable]bool, len(columns))
	for _, col := range columns {
		carried[domain.Variable(col)] = true
	}
	for _, v := range domain.NumericVariables() {
		if carried[v] {
			ds.Variables = append(ds.Variables, v)
		}
	}

	type key struct{ region, period string }
	index := make(map[key]int)
	for _, v := range values {
		k := key{v.Region, v.Period}
		i, ok := index[k]
		if !ok {
			i = len(ds.Records)
			index[k] = i
			ds.Records = append(ds.Records, domain.Record{
				Region: v.Region,
				Kind:   domain.RegionKind(v.Kind),
				Period: v.Period,
				Values: make(map[domain.Variable]float64),
			})
		}
		ds.Records[i].Values[domain.Variable(v.Variable)] = v.Value
	}
	return ds
}
