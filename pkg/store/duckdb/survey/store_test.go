package survey

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/coop-atlas/pkg/models/store"
	"github.com/de-tools/coop-atlas/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: store,
	}
}

func sampleValues() []store.SurveyValue {
	return []store.SurveyValue{
		{Region: "Kota Bandung", Kind: "City", Period: "2021-Q4", Variable: "active_cooperatives", Value: 120},
		{Region: "Kota Bandung", Kind: "City", Period: "2021-Q4", Variable: "micro_enterprises", Value: 3400},
		{Region: "Kabupaten Bogor", Kind: "Regency", Period: "2021-Q4", Variable: "active_cooperatives", Value: 45},
	}
}

func TestSurveyStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - snapshot stored", func(t *testing.T) {
		err := f.store.Add(ctx, "west-java", []string{"active_cooperatives", "micro_enterprises"}, sampleValues())
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM survey_records WHERE dataset = ?", "west-java").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("success - re-add replaces the snapshot", func(t *testing.T) {
		err := f.store.Add(ctx, "west-java", []string{"active_cooperatives"}, sampleValues()[:1])
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM survey_records WHERE dataset = ?", "west-java").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("success - empty snapshot", func(t *testing.T) {
		err := f.store.Add(ctx, "empty", []string{"active_cooperatives"}, nil)
		require.NoError(t, err)
	})
}

func TestSurveyStore_Add_AmbientTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("rollback discards the snapshot", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		txCtx := duckdb.WithTransaction(ctx, tx)
		err = f.store.Add(txCtx, "west-java", []string{"active_cooperatives"}, sampleValues()[:1])
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		datasets, err := f.store.ListDatasets(ctx)
		require.NoError(t, err)
		assert.Empty(t, datasets)
	})

	t.Run("commit persists every snapshot at once", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		txCtx := duckdb.WithTransaction(ctx, tx)
		require.NoError(t, f.store.Add(txCtx, "west-java", []string{"active_cooperatives"}, sampleValues()[:1]))
		require.NoError(t, f.store.Add(txCtx, "east-java", []string{"active_cooperatives"}, nil))
		require.NoError(t, tx.Commit())

		datasets, err := f.store.ListDatasets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"east-java", "west-java"}, datasets)
	})
}

func TestSurveyStore_Get(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	err := f.store.Add(ctx, "west-java", []string{"micro_enterprises", "active_cooperatives"}, sampleValues())
	require.NoError(t, err)

	columns, values, err := f.store.Get(ctx, "west-java")
	require.NoError(t, err)

	assert.Equal(t, []string{"active_cooperatives", "micro_enterprises"}, columns)
	require.Len(t, values, 3)
	assert.Equal(t, "Kabupaten Bogor", values[0].Region)
	assert.Equal(t, "Regency", values[0].Kind)
	assert.InDelta(t, 45, values[0].Value, 1e-12)
}

func TestSurveyStore_Get_UnknownDataset(t *testing.T) {
	f := setupFixture(t)

	columns, values, err := f.store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, columns)
	assert.Empty(t, values)
}

func TestSurveyStore_ListDatasets(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, "west-java", []string{"active_cooperatives"}, nil))
	require.NoError(t, f.store.Add(ctx, "east-java", []string{"active_cooperatives"}, nil))

	datasets, err := f.store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"east-java", "west-java"}, datasets)
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
