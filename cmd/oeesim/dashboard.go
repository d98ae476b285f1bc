package main

import (
	"github.com/spf13/cobra"

	"oeesim/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the interactive terminal dashboard",
	Long:  "dashboard opens a TUI with the recorded runs, aggregated metrics, and a dialog for entering new simulation runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return tui.NewDashboard(st, cfg).Run()
	},
}
