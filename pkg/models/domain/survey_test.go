package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		label string
		key   int
	}{
		{"2019-Q1", 20191},
		{"2019-Q4", 20194},
		{"2020-Q4", 20204},
		// a bare year has no quarter digit and sorts as Q4
		{"2021", 20214},
		{"2021-Q2", 20212},
		// malformed labels still sort deterministically
		{"abcd", 4},
		{"", 4},
		{"20x1-Q2", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, PeriodKey(tt.label), "label %q", tt.label)
	}
}

func TestDataset_Periods_ChronologicalOrder(t *testing.T) {
	ds := &Dataset{
		Records: []Record{
			{Region: "A", Period: "2020-Q4"},
			{Region: "B", Period: "2019-Q1"},
			{Region: "C", Period: "2019-Q4"},
			{Region: "D", Period: "2021"},
			{Region: "E", Period: "2019-Q1"},
		},
	}

	assert.Equal(t, []string{"2019-Q1", "2019-Q4", "2020-Q4", "2021"}, ds.Periods())
}

func TestDataset_FilterKind(t *testing.T) {
	ds := &Dataset{
		Variables: []Variable{ActiveCooperatives},
		Records: []Record{
			{Region: "Kota Bandung", Kind: City},
			{Region: "Kabupaten Garut", Kind: Regency},
		},
	}

	cities := ds.FilterKind(City)
	assert.Len(t, cities.Records, 1)
	assert.Equal(t, "Kota Bandung", cities.Records[0].Region)
	// the receiver keeps its records
	assert.Len(t, ds.Records, 2)
}

func TestCategorizeEffect(t *testing.T) {
	assert.Equal(t, EffectNegligible, CategorizeEffect(0.05))
	assert.Equal(t, EffectSmall, CategorizeEffect(0.10))
	assert.Equal(t, EffectSmall, CategorizeEffect(0.29))
	assert.Equal(t, EffectMedium, CategorizeEffect(0.30))
	assert.Equal(t, EffectLarge, CategorizeEffect(0.50))
	assert.Equal(t, EffectLarge, CategorizeEffect(0.95))
}
