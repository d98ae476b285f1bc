package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oeesim/internal/config"
	"oeesim/internal/report"
)

var (
	cfgPath    string
	schemaPath string
	dataDir    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "oeesim",
	Short: "OEE metrics for R&D simulation runs",
	Long:  "oeesim records simulation runs, computes Overall Equipment Effectiveness (Availability x Performance x Quality), and reports aggregated metrics per model.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config/oeesim.yaml", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/oeesim.cue", "Path to CUE schema file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Record storage directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configured YAML file. A missing file at the
// default path falls back to built-in defaults so the tool works
// without any setup.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.Default()
		applyOverrides(cfg)
		return cfg, nil
	}
	schema := schemaPath
	if _, err := os.Stat(schema); os.IsNotExist(err) {
		schema = ""
	}
	cfg, err := config.Load(cfgPath, schema)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if env := os.Getenv("GREPTIMEDB_ENDPOINT"); env != "" {
		cfg.Greptime.Endpoint = env
	}
}

func thresholdsFromConfig(cfg *config.Config) report.Thresholds {
	return report.Thresholds{
		Excellent:        cfg.Report.Thresholds.Excellent,
		Good:             cfg.Report.Thresholds.Good,
		Fair:             cfg.Report.Thresholds.Fair,
		AvailabilityHint: cfg.Report.Thresholds.AvailabilityHint,
		PerformanceHint:  cfg.Report.Thresholds.PerformanceHint,
		QualityHint:      cfg.Report.Thresholds.QualityHint,
	}
}
