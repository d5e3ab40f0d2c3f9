package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lineup/internal/config"
	"lineup/internal/logging"
	"lineup/internal/playlist"
	"lineup/internal/store"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var includeReview bool
	var urlTemplate string

	cmd := &cobra.Command{
		Use:   "playlist [run-id]",
		Short: "Generate an M3U playlist from a run's matches",
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

				template := strings.TrimSpace(urlTemplate)
				if template == "" {
					template = cfg.Playlist.URLTemplate
				}
				if template == "" {
					return fmt.Errorf("no playlist url template configured (set [playlist] url_template or pass --url-template)")
				}

				dir := strings.TrimSpace(outDir)
				if dir == "" {
					dir = cfg.Paths.ReportDir
				} else {
					dir, err = config.ExpandPath(dir)
					if err != nil {
						return err
					}
				}

				path, written, err := playlist.WriteFile(dir, run.ID, matches, playlist.Options{
					URLTemplate:   template,
					GroupTitle:    cfg.Playlist.GroupTitle,
					IncludeReview: includeReview,
				})
				if err != nil {
					return err
				}

				ctx.ensureLogger().Info("playlist written",
					logging.String("run", run.ID),
					logging.String("path", path),
					logging.Int("entries", written))
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", written, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for the playlist (defaults to the report directory)")
	cmd.Flags().BoolVar(&includeReview, "include-review", false, "Include matches flagged for manual review")
	cmd.Flags().StringVar(&urlTemplate, "url-template", "", "Stream URL template with {id} (overrides the configured template)")
	return cmd
}
