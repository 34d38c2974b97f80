package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/coop-atlas/pkg/ingest"
	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/services/survey"
)

// datasetFlags are the source-selection flags shared by every command.
type datasetFlags struct {
	dataPath string
	sheet    string
	marker   string
	period   string
}

func (df *datasetFlags) register(cmd *cobra.Command, withPeriod bool) {
	cmd.Flags().StringVar(&df.dataPath, "data", "", "Path to the survey file (.csv or .xlsx)")
	cmd.Flags().StringVar(&df.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	cmd.Flags().StringVar(&df.marker, "marker", survey.DefaultCityMarker, "Substring marking a region as a city")
	if withPeriod {
		cmd.Flags().StringVar(&df.period, "period", "", "Restrict to one period label (e.g. 2021-Q2)")
	}
	_ = cmd.MarkFlagRequired("data")
}

// load reads and normalizes the source file, applying the period
// restriction when one was given.
func (df *datasetFlags) load() (*domain.Dataset, error) {
	var (
		table ingest.Table
		err   error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(df.dataPath), ".xlsx"):
		table, err = ingest.ReadXLSX(df.dataPath, df.sheet)
	default:
		table, err = ingest.ReadCSV(df.dataPath)
	}
	if err != nil {
		return nil, err
	}

	ds, err := survey.Normalize(table, survey.NormalizerOptions{CityMarker: df.marker})
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", df.dataPath, err)
	}
	if df.period != "" {
		ds = ds.FilterPeriod(df.period)
	}
	return ds, nil
}
