// Command mlbview-probe queries a running mlbview service and checks the
// summaries it returns.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/mlbview/internal/probe"
	"github.com/okian/mlbview/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := &probe.Config{}
	var noColor bool

	root := &cobra.Command{
		Use:           "mlbview-probe",
		Short:         "Query and verify a running mlbview service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				color.NoColor = true
			}
			level := "info"
			if cfg.Verbose {
				level = "debug"
			}
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return logger.SetLevelString(level)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	pf.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	pf.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newPlayersCmd(cfg), newSelectCmd(cfg), newVerifyCmd(cfg))
	return root
}

func newPlayersCmd(cfg *probe.Config) *cobra.Command {
	var (
		dataset string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "players [query]",
		Short: "List or fuzzy-search a dataset's players",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			c := probe.NewClient(cfg.BaseURL, cfg.Timeout)
			matches, err := c.Players(cmd.Context(), dataset, query, limit)
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "hitters", "dataset to search")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (0 uses the service default)")
	return cmd
}

func newSelectCmd(cfg *probe.Config) *cobra.Command {
	var (
		p         probe.SelectParams
		threshold float64
		reversed  bool
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print a player's classified stat series",
		Example: `  mlbview-probe select --player "Aaron Judge" --stat TB
  mlbview-probe select --dataset pitchers --player "Gerrit Cole" --stat ERA --from 2024-04-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("threshold") {
				p.Threshold = &threshold
			}
			if cmd.Flags().Changed("reversed") {
				p.Reversed = &reversed
			}
			c := probe.NewClient(cfg.BaseURL, cfg.Timeout)
			sel, err := c.Select(cmd.Context(), p)
			if err != nil {
				return err
			}
			probe.RenderSelection(cmd.OutOrStdout(), sel)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Dataset, "dataset", "hitters", "hitters or pitchers")
	f.StringVar(&p.Player, "player", "", "player name")
	f.StringVar(&p.Stat, "stat", "", "stat code")
	f.StringVar(&p.From, "from", "", "first date, inclusive")
	f.StringVar(&p.To, "to", "", "last date, inclusive")
	f.Float64Var(&threshold, "threshold", 0, "explicit threshold instead of the median")
	f.BoolVar(&reversed, "reversed", false, "override the stat's polarity")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("stat")
	return cmd
}

func newVerifyCmd(cfg *probe.Config) *cobra.Command {
	var dataset, stat string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check summary invariants for every player of a dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := probe.NewClient(cfg.BaseURL, cfg.Timeout)
			if err := c.Health(cmd.Context()); err != nil {
				return fmt.Errorf("service health check failed: %w", err)
			}
			rep, err := probe.Verify(cmd.Context(), c, *cfg, dataset, stat)
			if err != nil {
				return err
			}
			probe.RenderReport(cmd.OutOrStdout(), rep)
			if !rep.OK() {
				return fmt.Errorf("%d of %d players failed", len(rep.Failures), rep.Players)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "hitters", "hitters or pitchers")
	cmd.Flags().StringVar(&stat, "stat", "H", "stat code")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 4, "concurrent requests")
	return cmd
}
