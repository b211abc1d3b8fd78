package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/roicalc/internal/report"
	"github.com/Simplici0/roicalc/internal/roi"
)

var (
	sweepFlags *profileFlags
	sweepField string
	sweepFrom  float64
	sweepTo    float64
	sweepStep  float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Show how the projection moves as one input varies",
	Example: "  roi sweep --field incident_risk --from 0 --to 100 --step 10\n" +
		"  roi sweep -f prospect.yaml --field annual_revenue --from 1000000 --to 10000000 --step 1000000",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := sweepFlags.profile(cmd.Flags())
		if err != nil {
			return err
		}
		values, err := roi.Steps(sweepFrom, sweepTo, sweepStep)
		if err != nil {
			return err
		}
		points, err := roi.Sweep(p, roi.Field(sweepField), values)
		if err != nil {
			return err
		}
		return writeSweep(cmd.OutOrStdout(), sweepField, points)
	},
}

func writeSweep(w io.Writer, field string, points []roi.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tannual benefits\tyear 1 ROI\tpayback\t3-year ROI\t5-year NPV\t\n", field)
	for _, pt := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			report.Number(pt.Value, 2),
			report.Currency(pt.Result.Benefits.TotalAnnual, 0),
			report.Percent(pt.Result.Analysis.Year1ROI),
			report.Months(pt.Result.Analysis.PaybackMonths),
			report.Percent(pt.Result.Analysis.Year3ROI),
			report.Currency(pt.Result.Analysis.NPV5Year, 0),
		)
	}
	return tw.Flush()
}

func init() {
	sweepFlags = addProfileFlags(sweepCmd.Flags())
	sweepCmd.Flags().StringVar(&sweepField, "field", string(roi.FieldIncidentRisk), "input to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 100, "last value (inclusive)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 10, "increment")
	rootCmd.AddCommand(sweepCmd)
}
