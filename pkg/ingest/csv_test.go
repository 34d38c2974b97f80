package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_CommaDelimited(t *testing.T) {
	in := strings.Join([]string{
		"region,period,active_cooperatives",
		"Kota Bandung,2021-Q4,120",
		"Kabupaten Bogor,2021-Q4,45",
	}, "\n")

	table, err := readCSV(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, []string{"region", "period", "active_cooperatives"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Kota Bandung", table.Rows[0][0])
}

func TestReadCSV_SniffsSemicolonDelimiter(t *testing.T) {
	in := strings.Join([]string{
		"region;period;active_cooperatives",
		"Kota Bandung;2021-Q4;120",
	}, "\n")

	table, err := readCSV(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, []string{"region", "period", "active_cooperatives"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Kota Bandung", "2021-Q4", "120"}, table.Rows[0])
}

func TestReadCSV_DropsLeadingIndexColumn(t *testing.T) {
	in := strings.Join([]string{
		"Unnamed: 0,region,active_cooperatives",
		"0,Kota Bandung,120",
		"1,Kabupaten Bogor,45",
	}, "\n")

	table, err := readCSV(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, []string{"region", "active_cooperatives"}, table.Columns)
	assert.Equal(t, "Kota Bandung", table.Rows[0][0])
	assert.Equal(t, "Kabupaten Bogor", table.Rows[1][0])
}

func TestReadCSV_RaggedRows(t *testing.T) {
	in := strings.Join([]string{
		"region,period,active_cooperatives",
		"Kota Bandung,2021-Q4",
	}, "\n")

	table, err := readCSV(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, "", table.Cell(table.Rows[0], 2))
	assert.Equal(t, "2021-Q4", table.Cell(table.Rows[0], 1))
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := readCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestDropIndexLike(t *testing.T) {
	tests := []struct {
		name string
		col  string
		drop bool
	}{
		{"unnamed export column", "Unnamed: 0", true},
		{"generated field", "field_1", true},
		{"blank header", "  ", true},
		{"real column", "region", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Table{Columns: []string{tt.col, "region"}, Rows: [][]string{{"0", "Kota A"}}}
			got := dropIndexLike(table)
			if tt.drop {
				assert.Equal(t, []string{"region"}, got.Columns)
				assert.Equal(t, [][]string{{"Kota A"}}, got.Rows)
			} else {
				assert.Equal(t, table, got)
			}
		})
	}
}
