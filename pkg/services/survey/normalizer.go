package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/coop-atlas/pkg/ingest"
	"github.com/de-tools/coop-atlas/pkg/models/domain"
)

// DefaultCityMarker is the substring that designates a regional unit
// as a city. The source dataset is Indonesian ("Kota Bandung" vs
// "Kabupaten Bandung"); the marker is matched case-insensitively.
const DefaultCityMarker = "kota"

// NormalizerOptions tunes schema normalization.
type NormalizerOptions struct {
	// CityMarker overrides DefaultCityMarker.
	CityMarker string
	// Aliases adds cleaned-header-to-variable mappings on top of the
	// built-in ones.
	Aliases map[string]domain.Variable
}

// Built-in aliases from cleaned raw headers to canonical variables.
// The source dataset uses Indonesian headers; English spellings are
// accepted so re-exported datasets normalize the same way.
var variableAliases = map[string]domain.Variable{
	"total_penduduk":              domain.TotalPopulation,
	"total_population":            domain.TotalPopulation,
	"jumlah_koperasi_aktif":       domain.ActiveCooperatives,
	"active_cooperatives":         domain.ActiveCooperatives,
	"jumlah_koperasi_tidak_aktif": domain.InactiveCooperatives,
	"inactive_cooperatives":       domain.InactiveCooperatives,
	"jumlah_koperasi_total":       domain.TotalCooperatives,
	"total_cooperatives":          domain.TotalCooperatives,
	"jumlah_karyawan":             domain.Employees,
	"employees":                   domain.Employees,
	"jumlah_manager":              domain.Managers,
	"managers":                    domain.Managers,
	"usaha_mikro":                 domain.MicroEnterprises,
	"micro_enterprises":           domain.MicroEnterprises,
	"usaha_kecil":                 domain.SmallEnterprises,
	"small_enterprises":           domain.SmallEnterprises,
	"usaha_menengah":              domain.MediumEnterprises,
	"medium_enterprises":          domain.MediumEnterprises,
	"usaha_besar":                 domain.LargeEnterprises,
	"large_enterprises":           domain.LargeEnterprises,
}

var regionAliases = map[string]bool{
	"kabupaten_kota": true,
	"kabkot":         true,
	"region":         true,
	"wilayah":        true,
}

var periodAliases = map[string]bool{
	"periode_update": true,
	"periode":        true,
	"period":         true,
}

var malePopulationAliases = map[string]bool{
	"jumlah_penduduk_laki_laki": true,
	"male_population":           true,
}

var femalePopulationAliases = map[string]bool{
	"jumlah_penduduk_perempuan": true,
	"female_population":         true,
}

// Normalize harmonizes a raw table into the canonical survey schema:
// headers are cleaned and mapped onto the fixed variable set, region
// kind is derived from the marker token, total population is derived
// from the male and female columns when both exist, and every numeric
// cell is coerced best-effort. A cell that fails to parse becomes a
// missing value; only a dataset without a region column is an error.
func Normalize(t ingest.Table, opts NormalizerOptions) (*domain.Dataset, error) {
	marker := opts.CityMarker
	if marker == "" {
		marker = DefaultCityMarker
	}
	marker = strings.ToLower(marker)

	regionCol, periodCol, maleCol, femaleCol := -1, -1, -1, -1
	varCols := make(map[domain.Variable]int)

	for i, raw := range t.Columns {
		name := CleanColumn(raw)
		switch {
		case regionAliases[name]:
			regionCol = i
		case periodAliases[name]:
			periodCol = i
		case malePopulationAliases[name]:
			maleCol = i
		case femalePopulationAliases[name]:
			femaleCol = i
		default:
			if v, ok := opts.Aliases[name]; ok {
				varCols[v] = i
			} else if v, ok := variableAliases[name]; ok {
				varCols[v] = i
			}
		}
	}
	if regionCol < 0 {
		return nil, fmt.Errorf("region column not found among %v", t.Columns)
	}

	derivePopulation := maleCol >= 0 && femaleCol >= 0

	ds := &domain.Dataset{}
	for _, v := range domain.NumericVariables() {
		if _, ok := varCols[v]; ok {
			ds.Variables = append(ds.Variables, v)
		} else if v == domain.TotalPopulation && derivePopulation {
			ds.Variables = append(ds.Variables, v)
		}
	}

	for _, row := range t.Rows {
		region := strings.TrimSpace(t.Cell(row, regionCol))
		kind := domain.Regency
		if strings.Contains(strings.ToLower(region), marker) {
			kind = domain.City
		}

		rec := domain.Record{
			Region: region,
			Kind:   kind,
			Values: make(map[domain.Variable]float64),
		}
		if periodCol >= 0 {
			rec.Period = strings.TrimSpace(t.Cell(row, periodCol))
		}

		for v, col := range varCols {
			if val, ok := ParseNumber(t.Cell(row, col)); ok {
				rec.Values[v] = val
			}
		}
		if derivePopulation {
			// the derived total wins over any raw total column, and is
			// absent unless both sexes were observed
			male, okM := ParseNumber(t.Cell(row, maleCol))
			female, okF := ParseNumber(t.Cell(row, femaleCol))
			if okM && okF {
				rec.Values[domain.TotalPopulation] = male + female
			} else {
				delete(rec.Values, domain.TotalPopulation)
			}
		}

		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// CleanColumn lower-cases a raw header and collapses whitespace,
// slashes and hyphens to underscores ("KABUPATEN / KOTA" becomes
// "kabupaten_kota").
func CleanColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " / ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// ParseNumber coerces a raw cell to a float, tolerating the formats
// the source spreadsheets mix: plain decimals, Indonesian thousands
// dots with a comma decimal ("1.234,5"), comma or dot thousands
// groups, and embedded spaces. Anything else is a missing value.
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ",") > 1:
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
