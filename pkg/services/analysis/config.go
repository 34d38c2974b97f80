package analysis

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/services/stats"
)

// Config carries the tunable analysis constants. Everything has a
// sensible default, so a config file is only needed to override.
type Config struct {
	CutoffYear         int    `mapstructure:"cutoff_year"`
	HeadlineVariable   string `mapstructure:"headline_variable"`
	DispersionVariable string `mapstructure:"dispersion_variable"`
	CityMarker         string `mapstructure:"city_marker"`
}

func DefaultConfig() Config {
	return Config{
		CutoffYear:         2019,
		HeadlineVariable:   string(domain.ActiveCooperatives),
		DispersionVariable: string(domain.MicroEnterprises),
		CityMarker:         "kota",
	}
}

// LoadConfig reads overrides from the given file on top of defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse analysis config: %w", err)
	}
	return cfg, nil
}

func (c Config) insightOptions() stats.InsightOptions {
	opts := stats.DefaultInsightOptions()
	if c.HeadlineVariable != "" {
		opts.HeadlineVariable = domain.Variable(c.HeadlineVariable)
	}
	if c.DispersionVariable != "" {
		opts.DispersionVariable = domain.Variable(c.DispersionVariable)
	}
	return opts
}
