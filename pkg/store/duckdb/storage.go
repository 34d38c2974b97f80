package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SurveyRecordsSchema = `
	CREATE TABLE IF NOT EXISTS survey_records (
		dataset VARCHAR NOT NULL,
		region VARCHAR NOT NULL,
		kind VARCHAR NOT NULL,
		period VARCHAR,
		variable VARCHAR NOT NULL,
		value DOUBLE NOT NULL
	);
`

const SurveyColumnsSchema = `
	CREATE TABLE IF NOT EXISTS survey_columns (
		dataset VARCHAR NOT NULL,
		variable VARCHAR NOT NULL,
		PRIMARY KEY (dataset, variable)
	);
`

var bootQueries = []string{
	SurveyRecordsSchema,
	SurveyColumnsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
