package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lineup/internal/normalize"
)

func newNormalizeCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "normalize NAME...",
		Short:       "Show how channel names normalize",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]normalize.Normalized, 0, len(args))
			for _, name := range args {
				results = append(results, normalize.Normalize(name))
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{
					result.Input,
					result.BaseName,
					result.Key,
					string(result.Resolution),
					result.Country,
					result.Lang,
					result.Variant,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"INPUT", "BASE NAME", "KEY", "RES", "COUNTRY", "LANG", "VARIANT"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
