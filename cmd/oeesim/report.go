package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"oeesim/internal/report"
)

var (
	reportModel string
	reportDays  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize stored runs for a model",
	Long:  "report aggregates the stored simulation records for a model over a time window and prints averages, extrema, and the OEE trend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		days := reportDays
		if days <= 0 {
			days = cfg.Report.WindowDays
		}
		window := time.Duration(days) * 24 * time.Hour

		st, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := st.Query(reportModel, window, cfg.Report.Limit)
		if err != nil {
			return err
		}

		agg := report.Aggregator{TrendDeadband: cfg.Report.TrendDeadband}
		summary, err := agg.Summarize(records, report.Filter{ModelName: reportModel, Window: window})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), report.RenderSummary(summary, window, thresholdsFromConfig(cfg)))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportModel, "model", report.ModelAll, "Simulation model name, or \"all\" for all models")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "Days to include (defaults to config window)")
}
