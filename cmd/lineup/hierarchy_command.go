package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lineup/internal/catalog"
	"lineup/internal/config"
	"lineup/internal/store"
)

type hierarchyFamily struct {
	Key      string   `json:"key"`
	RootID   int64    `json:"root_id"`
	RootName string   `json:"root_name"`
	Variants []string `json:"variants,omitempty"`
}

func newHierarchyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var variantsOnly bool

	cmd := &cobra.Command{
		Use:   "hierarchy [local|portal]",
		Short: "Show channel families within a catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := catalog.Local
			if len(args) == 1 {
				target = catalog.Name(strings.ToLower(strings.TrimSpace(args[0])))
				if !target.Valid() {
					return fmt.Errorf("unknown catalog %q (want local or portal)", args[0])
				}
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stored, err := st.StoredChannels(cmd.Context(), target)
				if err != nil {
					return err
				}
				if len(stored) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No %s channels imported yet; run `lineup import %s` first.\n", target, target)
					return nil
				}

				families, err := collectFamilies(stored)
				if err != nil {
					return err
				}
				if variantsOnly {
					filtered := families[:0]
					for _, family := range families {
						if len(family.Variants) > 0 {
							filtered = append(filtered, family)
						}
					}
					families = filtered
				}

				if jsonOutput {
					return writeJSON(cmd, families)
				}

				rows := make([][]string, 0, len(families))
				for _, family := range families {
					rows = append(rows, []string{
						strconv.FormatInt(family.RootID, 10),
						family.RootName,
						strconv.Itoa(len(family.Variants)),
						strings.Join(family.Variants, ", "),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"ROOT ID", "ROOT", "VARIANTS", "VARIANT NAMES"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "%d families, %d channels\n", len(families), len(stored))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&variantsOnly, "variants-only", false, "Only show families that have variants")
	return cmd
}

func collectFamilies(stored []store.StoredChannel) ([]hierarchyFamily, error) {
	byID := make(map[int64]store.StoredChannel, len(stored))
	for _, sc := range stored {
		byID[sc.Channel.ID] = sc
	}

	families := make(map[int64]*hierarchyFamily)
	for _, sc := range stored {
		if sc.Node == nil {
			return nil, fmt.Errorf("channel %d has no hierarchy placement; reimport the catalog", sc.Channel.ID)
		}
		root, ok := families[sc.Node.RootID]
		if !ok {
			rootChannel, found := byID[sc.Node.RootID]
			if !found {
				return nil, fmt.Errorf("hierarchy references missing root %d", sc.Node.RootID)
			}
			root = &hierarchyFamily{
				Key:      rootChannel.Channel.Norm.Key,
				RootID:   rootChannel.Channel.ID,
				RootName: rootChannel.Channel.Name,
			}
			families[sc.Node.RootID] = root
		}
		if sc.Node.IsVariant {
			root.Variants = append(root.Variants, sc.Channel.Name)
		}
	}

	result := make([]hierarchyFamily, 0, len(families))
	for _, family := range families {
		sort.Strings(family.Variants)
		result = append(result, *family)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}
