package api

// Dataset names an ingested survey snapshot.
type Dataset struct {
	Name string `json:"name"`
}

type CorrelationMatrix struct {
	Variables    []string    `json:"variables"`
	Coefficients [][]float64 `json:"coefficients"`
	PValues      [][]float64 `json:"p_values"`
}

type Comparison struct {
	Variable      string  `json:"variable"`
	Label         string  `json:"label"`
	U             float64 `json:"u"`
	PValue        float64 `json:"p_value"`
	EffectSize    float64 `json:"effect_size"`
	Direction     string  `json:"direction"`
	Significant   bool    `json:"significant"`
	CityMedian    float64 `json:"city_median"`
	RegencyMedian float64 `json:"regency_median"`
	CityCount     int     `json:"city_count"`
	RegencyCount  int     `json:"regency_count"`
}

type TrendEntry struct {
	Period       string  `json:"period"`
	Variable     string  `json:"variable"`
	Label        string  `json:"label"`
	U            float64 `json:"u"`
	PValue       float64 `json:"p_value"`
	EffectSize   float64 `json:"effect_size"`
	Z            float64 `json:"z"`
	R            float64 `json:"r"`
	RAbs         float64 `json:"r_abs"`
	Category     string  `json:"category"`
	Significant  bool    `json:"significant"`
	CityCount    int     `json:"city_count"`
	RegencyCount int     `json:"regency_count"`
}

type Insight struct {
	Kind    string `json:"kind"`
	Summary string `json:"summary"`
}

type RegionRank struct {
	Region string  `json:"region"`
	Kind   string  `json:"kind"`
	Value  float64 `json:"value"`
}
