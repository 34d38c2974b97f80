package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

type TableConfig struct {
	PeriodWidth   int
	VariableWidth int
	NumberWidth   int
	CategoryWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		PeriodWidth:   9,
		VariableWidth: 26,
		NumberWidth:   9,
		CategoryWidth: 12,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Trend renders the chronological effect-size table.
func (c *Reporter) Trend(entries []domain.TrendEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(c.writer, "No trend entries (insufficient data per period).")
		return err
	}

	funcMap := template.FuncMap{
		"formatRow": func(e domain.TrendEntry) string {
			signif := ""
			if e.Significant {
				signif = "*"
			}
			return fmt.Sprintf("| %-*s | %-*s | %*.1f | %*.4f | %*.3f | %*.3f | %-*s%s",
				c.config.PeriodWidth, e.Period,
				c.config.VariableWidth, e.Variable.Label(),
				c.config.NumberWidth, e.U,
				c.config.NumberWidth, e.PValue,
				c.config.NumberWidth, e.EffectSize,
				c.config.NumberWidth, e.RAbs,
				c.config.CategoryWidth, e.Category,
				signif)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+%s",
				strings.Repeat("-", c.config.PeriodWidth+2),
				strings.Repeat("-", c.config.VariableWidth+2),
				strings.Repeat("-", c.config.NumberWidth+2),
				strings.Repeat("-", c.config.NumberWidth+2),
				strings.Repeat("-", c.config.NumberWidth+2),
				strings.Repeat("-", c.config.NumberWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2))
		},
	}

	tmpl := `
Mann-Whitney effect-size trend (City vs Regency), * = p < 0.05

{{separator}}
| Period    | Variable                   | U         | p         | CLES      | |r|       | Category
{{separator}}
{{range .}}{{formatRow .}}
{{end}}{{separator}}
`
	t, err := template.New("trend").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, entries)
}

// Correlations renders the rho matrix with p-values underneath.
func (c *Reporter) Correlations(m domain.CorrelationMatrix) error {
	if m.Empty() {
		_, err := fmt.Fprintln(c.writer, "No correlation matrix (fewer than 2 variables or no complete cases).")
		return err
	}

	var b strings.Builder
	b.WriteString("Spearman correlation matrix (p-values in parentheses)\n\n")
	b.WriteString(fmt.Sprintf("%-28s", ""))
	for _, v := range m.Variables {
		b.WriteString(fmt.Sprintf("%-18s", abbreviate(string(v), 16)))
	}
	b.WriteString("\n")
	for i, vi := range m.Variables {
		b.WriteString(fmt.Sprintf("%-28s", abbreviate(string(vi), 26)))
		for j := range m.Variables {
			b.WriteString(fmt.Sprintf("%6.3f (%5.3f)    ", m.Coefficients[i][j], m.PValues[i][j]))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(c.writer, b.String())
	return err
}

func (c *Reporter) Comparison(cmp *domain.Comparison) error {
	if cmp == nil {
		_, err := fmt.Fprintln(c.writer, "Not computable: a subgroup has fewer than 2 observations.")
		return err
	}
	_, err := fmt.Fprintf(c.writer,
		"%s\n  U = %.1f  p = %.4f  CLES = %.3f (%s)\n  City median = %.1f (n=%d)  Regency median = %.1f (n=%d)\n",
		cmp.Variable.Label(), cmp.U, cmp.PValue, cmp.EffectSize, cmp.Direction,
		cmp.CityMedian, cmp.CityCount, cmp.RegencyMedian, cmp.RegencyCount)
	return err
}

func (c *Reporter) Insights(insights []domain.Insight) error {
	if len(insights) == 0 {
		_, err := fmt.Fprintln(c.writer, "No insights available for this selection.")
		return err
	}
	for _, in := range insights {
		if _, err := fmt.Fprintf(c.writer, "[%s] %s\n", in.Kind, in.Summary); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) Periods(periods []string) error {
	if len(periods) == 0 {
		_, err := fmt.Fprintln(c.writer, "No periods found.")
		return err
	}
	_, err := fmt.Fprintln(c.writer, strings.Join(periods, "\n"))
	return err
}

func (c *Reporter) TopRegions(ranks []domain.RegionRank) error {
	for i, r := range ranks {
		if _, err := fmt.Fprintf(c.writer, "%2d. %-40s %-8s %12.1f\n", i+1, r.Region, r.Kind, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func abbreviate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
