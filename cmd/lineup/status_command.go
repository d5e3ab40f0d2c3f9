package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lineup/internal/catalog"
	"lineup/internal/config"
	"lineup/internal/store"
)

var titleCase = cases.Title(language.English)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database and catalog state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				fmt.Fprintln(out, renderStatusLine("Database", statusOK, st.Path(), colorize))

				counts, err := st.CatalogCounts(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range []catalog.Name{catalog.Local, catalog.Portal} {
					count := counts[name]
					kind := statusOK
					message := fmt.Sprintf("%d channels", count)
					if count == 0 {
						kind = statusWarn
						message = "not imported"
					}
					fmt.Fprintln(out, renderStatusLine(titleCase.String(string(name))+" catalog", kind, message, colorize))
				}

				run, err := st.LatestRun(cmd.Context())
				if err != nil {
					return err
				}
				if run == nil {
					fmt.Fprintln(out, renderStatusLine("Latest run", statusWarn, "no match run recorded", colorize))
					return nil
				}
				fmt.Fprintln(out, renderStatusLine("Latest run", statusOK,
					fmt.Sprintf("%s (%s, rate %.1f%%)", run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.MatchRate*100),
					colorize))
				return nil
			})
		},
	}
}
