package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lineup/internal/config"
	"lineup/internal/match"
	"lineup/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect match runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newReportShowCommand(ctx).RunE(cmd, nil)
		},
	}

	reportCmd.AddCommand(newReportShowCommand(ctx))
	reportCmd.AddCommand(newReportListCommand(ctx))
	reportCmd.AddCommand(newReportUnmatchedCommand(ctx))
	return reportCmd
}

func newReportShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var reviewOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a run's matches (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				run, err := resolveRun(cmd, st, args)
				if err != nil || run == nil {
					return err
				}

				matches, err := st.MatchesForRun(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if reviewOnly {
					filtered := matches[:0]
					for _, candidate := range matches {
						if candidate.NeedsReview {
							filtered = append(filtered, candidate)
						}
					}
					matches = filtered
				}
				if limit > 0 && len(matches) > limit {
					matches = matches[:limit]
				}

				if jsonOutput {
					return writeJSON(cmd, struct {
						Run     store.RunSummary  `json:"run"`
						Matches []match.Candidate `json:"matches"`
					}{Run: *run, Matches: matches})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
				rows := make([][]string, 0, len(matches))
				for _, candidate := range matches {
					review := ""
					if candidate.NeedsReview {
						review = "review"
					}
					rows = append(rows, []string{
						strconv.FormatInt(candidate.LocalID, 10),
						candidate.LocalName,
						strconv.FormatInt(candidate.PortalID, 10),
						candidate.PortalName,
						string(candidate.Type),
						fmt.Sprintf("%.3f", candidate.Confidence),
						review,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"LOCAL ID", "LOCAL NAME", "PORTAL ID", "PORTAL NAME", "TYPE", "CONF", ""},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "%d matches, %d unmatched, rate %.1f%%\n",
					run.ExactCount+run.FuzzyCount,
					run.LocalCount-run.ExactCount-run.FuzzyCount,
					run.MatchRate*100)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&reviewOnly, "review", false, "Only show matches flagged for manual review")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to show (0 shows all)")
	return cmd
}

func newReportListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List match runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runs, err := st.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No match runs yet; run `lineup match` first.")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.CreatedAt.Format("2006-01-02 15:04:05"),
						strconv.Itoa(run.ExactCount + run.FuzzyCount),
						strconv.Itoa(run.LocalCount - run.ExactCount - run.FuzzyCount),
						fmt.Sprintf("%.1f%%", run.MatchRate*100),
						fmt.Sprintf("%.3f", run.AvgConfidence),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"RUN", "CREATED", "MATCHED", "UNMATCHED", "RATE", "AVG CONF"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to list (0 lists all)")
	return cmd
}

func newReportUnmatchedCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "unmatched [run-id]",
		Short: "Show a run's unmatched local channels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				run, err := resolveRun(cmd, st, args)
				if err != nil || run == nil {
					return err
				}

				unmatched, err := st.UnmatchedForRun(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, unmatched)
				}

				out := cmd.OutOrStdout()
				if len(unmatched) == 0 {
					fmt.Fprintf(out, "Run %s has no unmatched channels.\n", run.ID)
					return nil
				}
				rows := make([][]string, 0, len(unmatched))
				for _, entry := range unmatched {
					rows = append(rows, []string{
						strconv.FormatInt(entry.LocalID, 10),
						entry.LocalName,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"LOCAL ID", "LOCAL NAME"},
					rows,
					[]columnAlignment{alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

// resolveRun returns the requested run, or the latest when no id was given.
// A nil run with nil error means nothing to show; a notice was printed.
func resolveRun(cmd *cobra.Command, st *store.Store, args []string) (*store.RunSummary, error) {
	if len(args) == 1 {
		runID := strings.TrimSpace(args[0])
		run, err := st.Run(cmd.Context(), runID)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("run %q not found", runID)
		}
		return run, nil
	}

	run, err := st.LatestRun(cmd.Context())
	if err != nil {
		return nil, err
	}
	if run == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No match runs yet; run `lineup match` first.")
		return nil, nil
	}
	return run, nil
}
