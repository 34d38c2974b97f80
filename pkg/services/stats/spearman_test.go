package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

func makeDataset(vars []domain.Variable, records ...domain.Record) *domain.Dataset {
	return &domain.Dataset{Variables: vars, Records: records}
}

func record(region string, kind domain.RegionKind, period string, values map[domain.Variable]float64) domain.Record {
	return domain.Record{Region: region, Kind: kind, Period: period, Values: values}
}

func TestCorrelate_SymmetricWithUnitDiagonal(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.MicroEnterprises, domain.Employees}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 10, vars[1]: 3, vars[2]: 100}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 20, vars[1]: 1, vars[2]: 90}),
		record("C", domain.Regency, "", map[domain.Variable]float64{vars[0]: 15, vars[1]: 7, vars[2]: 120}),
		record("D", domain.Regency, "", map[domain.Variable]float64{vars[0]: 30, vars[1]: 2, vars[2]: 80}),
		record("E", domain.Regency, "", map[domain.Variable]float64{vars[0]: 25, vars[1]: 9, vars[2]: 70}),
	)

	m := Correlate(ds)
	require.False(t, m.Empty())
	require.Len(t, m.Variables, 3)

	for i := range m.Variables {
		assert.Equal(t, 1.0, m.Coefficients[i][i])
		assert.Equal(t, 0.0, m.PValues[i][i])
		for j := range m.Variables {
			assert.Equal(t, m.Coefficients[i][j], m.Coefficients[j][i])
			assert.Equal(t, m.PValues[i][j], m.PValues[j][i])
			assert.GreaterOrEqual(t, m.PValues[i][j], 0.0)
			assert.LessOrEqual(t, m.PValues[i][j], 1.0)
		}
	}
}

func TestCorrelate_PerfectMonotone(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.TotalCooperatives}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1, vars[1]: 10}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 2, vars[1]: 40}),
		record("C", domain.City, "", map[domain.Variable]float64{vars[0]: 3, vars[1]: 90}),
		record("D", domain.City, "", map[domain.Variable]float64{vars[0]: 4, vars[1]: 160}),
	)

	m := Correlate(ds)
	require.False(t, m.Empty())
	rho, p, ok := m.At(vars[0], vars[1])
	require.True(t, ok)
	assert.InDelta(t, 1.0, rho, 1e-12)
	assert.InDelta(t, 0.0, p, 1e-12)
}

func TestCorrelate_MissingValuesExcludedCasewise(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.MicroEnterprises}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1, vars[1]: 2}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 2, vars[1]: 1}),
		record("C", domain.City, "", map[domain.Variable]float64{vars[0]: 3, vars[1]: 3}),
		// incomplete case: must be dropped, not zero-filled
		record("D", domain.City, "", map[domain.Variable]float64{vars[0]: 1000}),
	)

	withGap := Correlate(ds)
	complete := Correlate(makeDataset(vars, ds.Records[:3]...))
	require.False(t, withGap.Empty())
	assert.Equal(t, complete.Coefficients, withGap.Coefficients)
}

func TestCorrelate_DegenerateInputs(t *testing.T) {
	t.Run("single variable", func(t *testing.T) {
		vars := []domain.Variable{domain.ActiveCooperatives}
		ds := makeDataset(vars,
			record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1}),
		)
		assert.True(t, Correlate(ds).Empty())
	})

	t.Run("no complete cases", func(t *testing.T) {
		vars := []domain.Variable{domain.ActiveCooperatives, domain.MicroEnterprises}
		ds := makeDataset(vars,
			record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1}),
			record("B", domain.City, "", map[domain.Variable]float64{vars[1]: 2}),
		)
		assert.True(t, Correlate(ds).Empty())
	})
}

func TestCorrelate_ConstantVariableDropped(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.MicroEnterprises, domain.LargeEnterprises}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1, vars[1]: 5, vars[2]: 0}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 2, vars[1]: 3, vars[2]: 0}),
		record("C", domain.Regency, "", map[domain.Variable]float64{vars[0]: 3, vars[1]: 8, vars[2]: 0}),
		record("D", domain.Regency, "", map[domain.Variable]float64{vars[0]: 4, vars[1]: 2, vars[2]: 0}),
		record("E", domain.Regency, "", map[domain.Variable]float64{vars[0]: 5, vars[1]: 6, vars[2]: 0}),
	)

	m := Correlate(ds)

	require.False(t, m.Empty())
	assert.Equal(t, []domain.Variable{vars[0], vars[1]}, m.Variables)
	for i := range m.Variables {
		for j := range m.Variables {
			assert.False(t, math.IsNaN(m.Coefficients[i][j]),
				"coefficient [%d][%d] must be finite", i, j)
			assert.False(t, math.IsNaN(m.PValues[i][j]),
				"p-value [%d][%d] must be finite", i, j)
		}
	}

	_, _, ok := m.At(vars[2], vars[0])
	assert.False(t, ok, "constant variable must not appear in the matrix")
}

func TestCorrelate_AllButOneConstant(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.LargeEnterprises}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 1, vars[1]: 7}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 2, vars[1]: 7}),
		record("C", domain.City, "", map[domain.Variable]float64{vars[0]: 3, vars[1]: 7}),
	)

	assert.True(t, Correlate(ds).Empty())
}

func TestCorrelate_Deterministic(t *testing.T) {
	vars := []domain.Variable{domain.ActiveCooperatives, domain.MicroEnterprises, domain.Managers}
	ds := makeDataset(vars,
		record("A", domain.City, "", map[domain.Variable]float64{vars[0]: 4, vars[1]: 9, vars[2]: 2}),
		record("B", domain.City, "", map[domain.Variable]float64{vars[0]: 8, vars[1]: 3, vars[2]: 5}),
		record("C", domain.City, "", map[domain.Variable]float64{vars[0]: 1, vars[1]: 6, vars[2]: 8}),
	)

	assert.Equal(t, Correlate(ds), Correlate(ds))
}
