package store

// SurveyValue is one observed (region, period, variable) cell in long
// format. Missing observations are simply absent rows.
type SurveyValue struct {
	Region   string
	Kind     string
	Period   string
	Variable string
	Value    float64
}
