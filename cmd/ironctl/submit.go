package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/ironrank/internal/synthetic"
)

func newSubmitCmd() *cobra.Command {
	var (
		baseURL string
		input   string
		asOf    string
		workers int
		timeout time.Duration
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Replay a history against a running server",
		Long: `Send every session to /v1/summary, then the whole history to
/v1/dashboard, and print the dashboard. Without --input a default history
is generated from --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseTime(asOf)
			if err != nil {
				return err
			}

			var h synthetic.History
			if input != "" {
				if h, err = synthetic.Load(input); err != nil {
					return err
				}
			} else {
				cfg := synthetic.DefaultConfig()
				cfg.End, cfg.Seed = at, seed
				if h, err = synthetic.Generate(cmd.Context(), cfg); err != nil {
					return err
				}
			}

			client := synthetic.NewClient(baseURL, timeout)
			stats, dashboard, err := synthetic.Submit(cmd.Context(), client, h, at, workers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "sessions: %d, summaries ok: %d, failed: %d, took %s\n",
				stats.Sessions, stats.SummariesOK, stats.SummariesFailed, stats.Duration.Round(time.Millisecond))
			return printJSON(cmd.OutOrStdout(), dashboard)
		},
	}
	f := cmd.Flags()
	f.StringVar(&baseURL, "url", "http://localhost:9080", "base URL of the server")
	f.StringVarP(&input, "input", "i", "", "history file (default: generate one)")
	f.StringVar(&asOf, "as-of", "", "dashboard instant, RFC3339 or YYYY-MM-DD (default now)")
	f.IntVar(&workers, "workers", 4, "concurrent summary requests")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	f.Uint64Var(&seed, "seed", 1, "seed for the generated history")
	return cmd
}
