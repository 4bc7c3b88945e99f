package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/ironrank/internal/synthetic"
)

func newGenerateCmd() *cobra.Command {
	cfg := synthetic.DefaultConfig()
	var (
		end    string
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic training history",
		Long: `Generate a push/pull/legs history with weekly progression.

The same --seed always produces the same history. Without --output the
history is written to stdout.

Example:
  ironctl generate --weeks 16 --per-week 4 --output history.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg.End, err = parseTime(end); err != nil {
				return err
			}
			h, err := synthetic.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if output == "" {
				return printJSON(cmd.OutOrStdout(), h)
			}
			if err := synthetic.Save(output, h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sets in %d sessions to %s\n", len(h.Sets), len(h.SessionStarts), output)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.Weeks, "weeks", cfg.Weeks, "weeks of history")
	f.IntVar(&cfg.SessionsPerWeek, "per-week", cfg.SessionsPerWeek, "sessions per week (1-7)")
	f.IntVar(&cfg.SetsPerExercise, "sets", cfg.SetsPerExercise, "working sets per exercise")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent session builders")
	f.StringVar(&end, "end", "", "last day of history, RFC3339 or YYYY-MM-DD (default now)")
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
