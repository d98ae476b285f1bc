package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"oeesim/internal/report"
)

var (
	listModel string
	listDays  int
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent simulation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		days := listDays
		if days <= 0 {
			days = cfg.Report.WindowDays
		}
		limit := listLimit
		if limit <= 0 {
			limit = cfg.Report.Limit
		}
		window := time.Duration(days) * 24 * time.Hour

		st, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := st.Query(listModel, window, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintf(out, "No simulation runs found for model %q in the last %d days.\n", listModel, days)
			return nil
		}

		fmt.Fprintf(out, "Recent simulation runs (model %q, last %d days):\n", listModel, days)
		fmt.Fprintln(out, strings.Repeat("=", 88))
		fmt.Fprintf(out, "%-17s %-24s %12s %12s %12s %8s\n", "Timestamp", "Model", "Availability", "Performance", "Quality", "OEE")
		fmt.Fprintln(out, strings.Repeat("-", 88))
		for _, r := range records {
			fmt.Fprintf(out, "%-17s %-24s %11.2f%% %11.2f%% %11.2f%% %7.2f%%\n",
				r.Timestamp.Format("2006-01-02 15:04"),
				r.ModelName,
				r.Availability*100,
				r.Performance*100,
				r.Quality*100,
				r.OEE*100,
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listModel, "model", report.ModelAll, "Simulation model name, or \"all\" for all models")
	listCmd.Flags().IntVar(&listDays, "days", 0, "Days to look back (defaults to config window)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum records to list (defaults to config limit)")
}
