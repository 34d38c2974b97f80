package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/coop-atlas/pkg/services/stats"
)

func NewCorrelateCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Spearman correlation matrix over the canonical variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := flags.load()
			if err != nil {
				return err
			}
			return reporter.Correlations(stats.Correlate(ds))
		},
	}
	flags.register(cmd, true)
	return cmd
}

func NewCompareCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	var variable string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Mann-Whitney City vs Regency comparison for one variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveVariable(variable)
			if err != nil {
				return err
			}
			ds, err := flags.load()
			if err != nil {
				return err
			}
			return reporter.Comparison(stats.Compare(ds, v))
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&variable, "variable", "", "Canonical variable name (e.g. active_cooperatives)")
	_ = cmd.MarkFlagRequired("variable")
	return cmd
}

func NewTrendCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	var fromYear int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Effect-size trend per period across all variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := flags.load()
			if err != nil {
				return err
			}
			entries := stats.Trend(ds, stats.TrendOptions{CutoffYear: fromYear})
			return reporter.Trend(entries)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().IntVar(&fromYear, "from", 0, "Drop periods before this year (0 keeps all)")
	return cmd
}

func NewInsightsCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Narrative-ready statistical insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := flags.load()
			if err != nil {
				return err
			}
			return reporter.Insights(stats.Insights(ds, stats.DefaultInsightOptions()))
		},
	}
	flags.register(cmd, true)
	return cmd
}

func NewPeriodsCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List the dataset's periods in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := flags.load()
			if err != nil {
				return err
			}
			return reporter.Periods(ds.Periods())
		},
	}
	flags.register(cmd, false)
	return cmd
}

func NewTopCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	var variable string
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Top regions by a variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveVariable(variable)
			if err != nil {
				return err
			}
			ds, err := flags.load()
			if err != nil {
				return err
			}
			return reporter.TopRegions(stats.TopRegions(ds, v, n))
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&variable, "variable", "", "Canonical variable name")
	cmd.Flags().IntVar(&n, "n", 10, "Number of regions to list")
	_ = cmd.MarkFlagRequired("variable")
	return cmd
}

func resolveVariable(name string) (domain.Variable, error) {
	for _, v := range domain.NumericVariables() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variable %q; expected one of %v", name, domain.NumericVariables())
}
