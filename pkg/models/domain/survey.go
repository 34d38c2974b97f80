package domain

import (
	"sort"
	"strconv"
)

// RegionKind splits regional units into the two groups every
// nonparametric comparison runs over.
type RegionKind string

const (
	City    RegionKind = "City"
	Regency RegionKind = "Regency"
)

// Variable is a canonical numeric column of the survey schema.
type Variable string

const (
	TotalPopulation      Variable = "total_population"
	ActiveCooperatives   Variable = "active_cooperatives"
	InactiveCooperatives Variable = "inactive_cooperatives"
	TotalCooperatives    Variable = "total_cooperatives"
	Employees            Variable = "employees"
	Managers             Variable = "managers"
	MicroEnterprises     Variable = "micro_enterprises"
	SmallEnterprises     Variable = "small_enterprises"
	MediumEnterprises    Variable = "medium_enterprises"
	LargeEnterprises     Variable = "large_enterprises"
)

var numericVariables = []Variable{
	TotalPopulation,
	ActiveCooperatives,
	InactiveCooperatives,
	TotalCooperatives,
	Employees,
	Managers,
	LargeEnterprises,
	SmallEnterprises,
	MediumEnterprises,
	MicroEnterprises,
}

// NumericVariables returns the fixed analysis variable set.
func NumericVariables() []Variable {
	vars := make([]Variable, len(numericVariables))
	copy(vars, numericVariables)
	return vars
}

var variableLabels = map[Variable]string{
	TotalPopulation:      "Total Population",
	ActiveCooperatives:   "Active Cooperatives",
	InactiveCooperatives: "Inactive Cooperatives",
	TotalCooperatives:    "Total Cooperatives",
	Employees:            "Cooperative Employees",
	Managers:             "Cooperative Managers",
	MicroEnterprises:     "Micro Enterprises",
	SmallEnterprises:     "Small Enterprises",
	MediumEnterprises:    "Medium Enterprises",
	LargeEnterprises:     "Large Enterprises",
}

// Label returns the display label for a variable, falling back to the
// raw column name for anything outside the canonical set.
func (v Variable) Label() string {
	if label, ok := variableLabels[v]; ok {
		return label
	}
	return string(v)
}

// Record is one survey row: a regional unit observed in one period.
// A variable absent from Values is a missing observation, never zero.
type Record struct {
	Region string
	Kind   RegionKind
	Period string
	Values map[Variable]float64
}

// Value reports the observation for v and whether it is present.
func (r Record) Value(v Variable) (float64, bool) {
	val, ok := r.Values[v]
	return val, ok
}

// Dataset is an immutable snapshot of normalized survey records.
// Variables lists the numeric columns the source actually carried,
// so "column absent" and "value missing" stay distinct states.
type Dataset struct {
	Variables []Variable
	Records   []Record
}

// HasVariable reports whether the source carried the given column.
func (d *Dataset) HasVariable(v Variable) bool {
	for _, dv := range d.Variables {
		if dv == v {
			return true
		}
	}
	return false
}

// Periods returns the distinct period labels in chronological order.
func (d *Dataset) Periods() []string {
	seen := make(map[string]bool)
	var periods []string
	for _, r := range d.Records {
		if r.Period == "" || seen[r.Period] {
			continue
		}
		seen[r.Period] = true
		periods = append(periods, r.Period)
	}
	sort.SliceStable(periods, func(i, j int) bool {
		ki, kj := PeriodKey(periods[i]), PeriodKey(periods[j])
		if ki != kj {
			return ki < kj
		}
		return periods[i] < periods[j]
	})
	return periods
}

// FilterPeriod returns a new dataset holding only records of the period.
func (d *Dataset) FilterPeriod(period string) *Dataset {
	out := &Dataset{Variables: d.Variables}
	for _, r := range d.Records {
		if r.Period == period {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// FilterKind returns a new dataset holding only records of one region kind.
func (d *Dataset) FilterKind(kind RegionKind) *Dataset {
	out := &Dataset{Variables: d.Variables}
	for _, r := range d.Records {
		if r.Kind == kind {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// PeriodKey collapses a period label into a sortable integer
// (year*10 + quarter). Labels come in both "YYYY" and "YYYY-Qn" shapes;
// a quarter digit is only read past the 4-digit year prefix, and an
// absent or unparsable quarter defaults to Q4 so bare years sort after
// any quarter of the same year.
func PeriodKey(label string) int {
	year := 0
	if len(label) >= 4 {
		if y, err := strconv.Atoi(label[:4]); err == nil {
			year = y
		}
	}
	quarter := 4
	if len(label) > 4 {
		if q, err := strconv.Atoi(label[len(label)-1:]); err == nil {
			quarter = q
		}
	}
	return year*10 + quarter
}

// PeriodYear extracts the 4-digit year prefix, 0 when unparsable.
func PeriodYear(label string) int {
	if len(label) < 4 {
		return 0
	}
	y, err := strconv.Atoi(label[:4])
	if err != nil {
		return 0
	}
	return y
}
