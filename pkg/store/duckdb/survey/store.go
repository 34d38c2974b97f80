package survey

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/coop-atlas/pkg/models/store"
	"github.com/de-tools/coop-atlas/pkg/store/duckdb"
)

// Store persists normalized survey snapshots per named dataset.
// Add replaces any previous snapshot under the same name, so startup
// imports stay idempotent across restarts of a file-backed database.
type Store interface {
	Add(ctx context.Context, dataset string, columns []string, values []store.SurveyValue) error
	Get(ctx context.Context, dataset string) ([]string, []store.SurveyValue, error)
	ListDatasets(ctx context.Context) ([]string, error)
}

type surveyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &surveyStore{db: db}, nil
}

func (s *surveyStore) Add(ctx context.Context, dataset string, columns []string, values []store.SurveyValue) error {
	tx := duckdb.GetTransaction(ctx)
	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin snapshot tx: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM survey_records WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("clear snapshot records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM survey_columns WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("clear snapshot columns: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO survey_columns (dataset, variable) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare column insert: %w", err)
	}
	defer colStmt.Close()
	for _, col := range columns {
		if _, err := colStmt.ExecContext(ctx, dataset, col); err != nil {
			return fmt.Errorf("insert column: %w", err)
		}
	}

	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_records (dataset, region, kind, period, variable, value)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer recStmt.Close()
	for _, v := range values {
		_, err := recStmt.ExecContext(ctx, dataset, v.Region, v.Kind, v.Period, v.Variable, v.Value)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if ownTx {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit snapshot: %w", err)
		}
	}
	return nil
}

func (s *surveyStore) Get(ctx context.Context, dataset string) ([]string, []store.SurveyValue, error) {
	colRows, err := s.db.QueryContext(ctx,
		`SELECT variable FROM survey_columns WHERE dataset = ? ORDER BY variable`, dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("query columns: %w", err)
	}
	defer colRows.Close()

	var columns []string
	for colRows.Next() {
		var col string
		if err := colRows.Scan(&col); err != nil {
			return nil, nil, err
		}
		columns = append(columns, col)
	}
	if err := colRows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT region, kind, period, variable, value
		FROM survey_records
		WHERE dataset = ?
		ORDER BY period, region, variable`, dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var values []store.SurveyValue
	for rows.Next() {
		var v store.SurveyValue
		var period sql.NullString
		if err := rows.Scan(&v.Region, &v.Kind, &period, &v.Variable, &v.Value); err != nil {
			return nil, nil, err
		}
		v.Period = period.String
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, values, nil
}

func (s *surveyStore) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT dataset FROM survey_columns ORDER BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	var datasets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		datasets = append(datasets, name)
	}
	return datasets, rows.Err()
}
