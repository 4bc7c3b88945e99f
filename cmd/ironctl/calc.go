package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/plates"
)

func newPlatesCmd() *cobra.Command {
	var (
		barKg     float64
		available []float64
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "plates <target-kg>",
		Short: "Solve a barbell loadout",
		Example: `  ironctl plates 140
  ironctl plates 62.5 --bar 15 --plates 20,10,5,2.5,1.25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: target %q", plates.ErrInvalidWeight, args[0])
			}
			res, err := service.New().Plates(cmd.Context(), service.PlateRequest{
				TargetKg: target,
				BarKg:    barKg,
				Plates:   available,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			perSide := make([]string, 0, len(res.PerSide))
			for _, p := range res.PerSide {
				perSide = append(perSide, strconv.FormatFloat(p, 'f', -1, 64))
			}
			if len(perSide) == 0 {
				perSide = append(perSide, "empty bar")
			}
			fmt.Fprintf(out, "per side: %s\n", strings.Join(perSide, " + "))
			fmt.Fprintf(out, "loaded:   %skg on a %skg bar\n",
				strconv.FormatFloat(res.LoadedKg, 'f', -1, 64), strconv.FormatFloat(res.BarKg, 'f', -1, 64))
			if res.RemainderKg > 0 {
				fmt.Fprintf(out, "short:    %skg per side\n", strconv.FormatFloat(res.RemainderKg, 'f', -1, 64))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&barKg, "bar", 0, "bar weight in kg (default 20)")
	f.Float64SliceVar(&available, "plates", nil, "available plates, heaviest first")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newOneRepMaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "1rm <weight-kg> <reps>",
		Short:   "Estimate a one-rep max",
		Example: "  ironctl 1rm 100 5",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			reps, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid reps %q", args[1])
			}
			est, err := service.New().OneRepMax(cmd.Context(), weight, reps)
			if err != nil {
				return err
			}
			if est == 0 && reps > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no reliable estimate for %d reps\n", reps)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "estimated 1RM: %skg\n", strconv.FormatFloat(est, 'f', -1, 64))
			return nil
		},
	}
}
