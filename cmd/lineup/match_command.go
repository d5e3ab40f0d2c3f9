package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lineup/internal/catalog"
	"lineup/internal/config"
	"lineup/internal/logging"
	"lineup/internal/match"
	"lineup/internal/store"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match local channels against the portal catalog",
		Long: `Match scores every local channel against portal candidates and records
the outcome as a new run. Each run supersedes the previous one as the latest
report; history stays queryable by run id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger := ctx.ensureLogger()

				local, err := st.Channels(cmd.Context(), catalog.Local)
				if err != nil {
					return err
				}
				portal, err := st.Channels(cmd.Context(), catalog.Portal)
				if err != nil {
					return err
				}
				if len(local) == 0 || len(portal) == 0 {
					return fmt.Errorf("both catalogs must be imported before matching (local: %d, portal: %d)", len(local), len(portal))
				}

				report, err := match.Match(cmd.Context(), local, portal, cfg.MatcherConfig())
				if err != nil {
					return err
				}

				localNames := make(map[int64]string, len(local))
				for _, channel := range local {
					localNames[channel.ID] = channel.Name
				}
				runID, err := st.SaveRun(cmd.Context(), report, localNames)
				if err != nil {
					return err
				}

				logger.Info("match run complete",
					logging.String("run", runID),
					logging.Int("matched", len(report.Matches)),
					logging.Int("unmatched", len(report.Unmatched)),
					logging.Float64("rate", report.Stats.MatchRate))

				if jsonOutput {
					return writeJSON(cmd, struct {
						RunID string      `json:"run_id"`
						Stats match.Stats `json:"stats"`
					}{RunID: runID, Stats: report.Stats})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Run %s\n", runID)
				fmt.Fprintln(out, renderStatsTable(report.Stats))
				reviewCount := 0
				for _, candidate := range report.Matches {
					if candidate.NeedsReview {
						reviewCount++
					}
				}
				if reviewCount > 0 {
					fmt.Fprintln(out, renderStatusLine("Manual review", statusWarn,
						fmt.Sprintf("%d matches below the auto threshold", reviewCount), colorize))
				}
				if len(report.Unmatched) > 0 {
					fmt.Fprintln(out, renderStatusLine("Unmatched", statusWarn,
						fmt.Sprintf("%d local channels found no counterpart", len(report.Unmatched)), colorize))
				} else {
					fmt.Fprintln(out, renderStatusLine("Unmatched", statusOK, "every local channel matched", colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a summary")
	return cmd
}

func renderStatsTable(stats match.Stats) string {
	rows := [][]string{
		{"Local channels", fmt.Sprintf("%d", stats.LocalCount)},
		{"Portal channels", fmt.Sprintf("%d", stats.PortalCount)},
		{"Exact matches", fmt.Sprintf("%d", stats.ExactCount)},
		{"Fuzzy matches", fmt.Sprintf("%d", stats.FuzzyCount)},
		{"Match rate", fmt.Sprintf("%.1f%%", stats.MatchRate*100)},
		{"Avg confidence", fmt.Sprintf("%.3f", stats.AvgConfidence)},
		{"Confidence >= 0.9", fmt.Sprintf("%d", stats.Histogram.High)},
		{"Confidence 0.7 - 0.9", fmt.Sprintf("%d", stats.Histogram.Medium)},
		{"Confidence < 0.7", fmt.Sprintf("%d", stats.Histogram.Low)},
	}
	return renderTable([]string{"METRIC", "VALUE"}, rows, []columnAlignment{alignLeft, alignRight})
}
