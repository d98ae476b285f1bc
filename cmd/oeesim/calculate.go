package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oeesim/internal/logging"
	"oeesim/internal/oee"
	"oeesim/internal/report"
)

var (
	calcModel    string
	calcPlanned  float64
	calcDowntime float64
	calcActual   float64
	calcIdeal    float64
	calcTotal    int
	calcFailed   int
	calcNotes    string
	calcSave     bool
	calcEchoJSON bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute OEE for one simulation run",
	Long:  "calculate validates the run parameters, computes Availability, Performance, Quality, and OEE, prints a report, and optionally persists the record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.New(verbose)

		engine := oee.NewEngine()
		rec, err := engine.Compute(oee.Params{
			ModelName:         calcModel,
			PlannedTime:       calcPlanned,
			Downtime:          calcDowntime,
			ActualCycleTime:   calcActual,
			IdealCycleTime:    calcIdeal,
			TotalSimulations:  calcTotal,
			FailedSimulations: calcFailed,
			Notes:             calcNotes,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), report.RenderRecord(rec, thresholdsFromConfig(cfg)))

		if !calcSave {
			return nil
		}
		writer, _, cleanup, err := newSink(cfg, calcEchoJSON, log)
		if err != nil {
			return err
		}
		defer cleanup()
		if err := writer.Write(rec); err != nil {
			return err
		}
		log.Info("record saved", "model", rec.ModelName, "oee", rec.OEE, "data_dir", cfg.DataDir)
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringVar(&calcModel, "model", "", "Name of the simulation model")
	calculateCmd.Flags().Float64Var(&calcPlanned, "planned-time", 0, "Planned simulation time in minutes")
	calculateCmd.Flags().Float64Var(&calcDowntime, "downtime", 0, "Downtime in minutes")
	calculateCmd.Flags().Float64Var(&calcActual, "actual-cycle-time", 0, "Actual cycle time in minutes")
	calculateCmd.Flags().Float64Var(&calcIdeal, "ideal-cycle-time", 0, "Ideal cycle time in minutes")
	calculateCmd.Flags().IntVar(&calcTotal, "total-simulations", 0, "Total number of simulations")
	calculateCmd.Flags().IntVar(&calcFailed, "failed-simulations", 0, "Number of failed simulations")
	calculateCmd.Flags().StringVar(&calcNotes, "notes", "", "Notes about this simulation run")
	calculateCmd.Flags().BoolVar(&calcSave, "save", false, "Persist the computed record")
	calculateCmd.Flags().BoolVar(&calcEchoJSON, "echo-json", false, "Also print the saved record as JSON")
	_ = calculateCmd.MarkFlagRequired("model")
	_ = calculateCmd.MarkFlagRequired("planned-time")
	_ = calculateCmd.MarkFlagRequired("actual-cycle-time")
	_ = calculateCmd.MarkFlagRequired("ideal-cycle-time")
	_ = calculateCmd.MarkFlagRequired("total-simulations")
}
