// YAML config loader with CUE validation integration
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Greptime holds the optional GreptimeDB mirror settings.
type Greptime struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
}

// Thresholds tune report status interpretation and improvement hints.
type Thresholds struct {
	Excellent        float64 `yaml:"excellent"`
	Good             float64 `yaml:"good"`
	Fair             float64 `yaml:"fair"`
	AvailabilityHint float64 `yaml:"availability_hint"`
	PerformanceHint  float64 `yaml:"performance_hint"`
	QualityHint      float64 `yaml:"quality_hint"`
}

// Report holds aggregation and rendering settings.
type Report struct {
	WindowDays    int        `yaml:"window_days"`
	Limit         int        `yaml:"limit"`
	TrendDeadband float64    `yaml:"trend_deadband"`
	Thresholds    Thresholds `yaml:"thresholds"`
}

// Config is the root configuration.
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Greptime Greptime `yaml:"greptime"`
	Report   Report   `yaml:"report"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Greptime: Greptime{
			Database: "public",
		},
		Report: Report{
			WindowDays:    30,
			Limit:         100,
			TrendDeadband: 0.01,
			Thresholds: Thresholds{
				Excellent:        0.85,
				Good:             0.70,
				Fair:             0.60,
				AvailabilityHint: 0.90,
				PerformanceHint:  0.95,
				QualityHint:      0.99,
			},
		},
	}
}

// Load loads YAML config and validates it against a CUE schema. An
// empty cueSchemaPath skips schema validation. Absent fields fall back
// to Default values.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Greptime.Database == "" {
		c.Greptime.Database = d.Greptime.Database
	}
	if c.Report.WindowDays <= 0 {
		c.Report.WindowDays = d.Report.WindowDays
	}
	if c.Report.Limit <= 0 {
		c.Report.Limit = d.Report.Limit
	}
	if c.Report.TrendDeadband <= 0 {
		c.Report.TrendDeadband = d.Report.TrendDeadband
	}
	if c.Report.Thresholds == (Thresholds{}) {
		c.Report.Thresholds = d.Report.Thresholds
	}
}
