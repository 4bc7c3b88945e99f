package main

import (
	"github.com/spf13/cobra"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/synthetic"
)

func newReportCmd() *cobra.Command {
	var (
		input      string
		asOf       string
		experience string
		targetKg   float64
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the dashboard for a history locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := synthetic.Load(input)
			if err != nil {
				return err
			}
			at, err := parseTime(asOf)
			if err != nil {
				return err
			}
			settings := model.UserSettings{WeeklyTargetKg: targetKg}
			if experience != "" {
				if settings.Experience, err = model.ParseExperience(experience); err != nil {
					return err
				}
			}

			svc := service.New()
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			defer svc.Stop()

			d, err := svc.Dashboard(cmd.Context(), service.DashboardInput{
				Sets:          h.Sets,
				Settings:      &settings,
				AsOf:          at,
				SessionStarts: h.SessionStarts,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "history file written by generate, or a JSON array of sets")
	f.StringVar(&asOf, "as-of", "", "instant to compute at, RFC3339 or YYYY-MM-DD (default now)")
	f.StringVar(&experience, "experience", "", "Beginner or Intermediate")
	f.Float64Var(&targetKg, "target", 0, "weekly volume target in kg")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
