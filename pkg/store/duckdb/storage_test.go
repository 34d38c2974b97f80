package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsSurveySchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO survey_records (dataset, region, kind, period, variable, value) VALUES (?, ?, ?, ?, ?, ?)`,
		"west-java-2021", "Kota Bandung", "City", "2021-Q4", "active_cooperatives", 120.0,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO survey_columns (dataset, variable) VALUES (?, ?)`,
		"west-java-2021", "active_cooperatives",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM survey_records WHERE dataset = ?", "west-java-2021").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_NullablePeriod(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ""})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO survey_records (dataset, region, kind, period, variable, value) VALUES (?, ?, ?, ?, ?, ?)`,
		"snapshot", "Kabupaten Bogor", "Regency", nil, "micro_enterprises", 900.0,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM survey_records WHERE period IS NULL").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
