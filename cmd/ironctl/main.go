// Command ironctl generates training histories and computes ironrank
// metrics locally or against a running server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/ironrank/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)
	root := &cobra.Command{
		Use:   "ironctl",
		Short: "ironctl - strength training metrics from the command line",
		Long: `ironctl works with logged sets stored as JSON.

  generate  write a synthetic training history
  report    compute the full dashboard for a history locally
  submit    replay a history against a running ironrank server
  plates    solve a barbell loadout
  1rm       estimate a one-rep max`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logger.Init(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevel(logLevel),
				logger.WithFormat(logFormat),
			)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatText, "log format: text or json")

	root.AddCommand(
		newGenerateCmd(),
		newReportCmd(),
		newSubmitCmd(),
		newPlatesCmd(),
		newOneRepMaxCmd(),
	)
	return root
}

// parseTime accepts RFC3339 or a bare date; empty means now.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or YYYY-MM-DD", s)
	}
	// end of that day
	return t.Add(24*time.Hour - time.Second), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
