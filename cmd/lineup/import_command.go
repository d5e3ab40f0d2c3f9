package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lineup/internal/catalog"
	"lineup/internal/config"
	"lineup/internal/hierarchy"
	"lineup/internal/logging"
	"lineup/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string

	cmd := &cobra.Command{
		Use:   "import [local|portal|all]",
		Short: "Import catalog dumps into the lineup database",
		Long: `Import reads a catalog dump (CSV or JSON), normalizes every channel
name, stores the catalog, and rebuilds its hierarchy. Importing replaces the
previous contents of that catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "all"
			if len(args) == 1 {
				which = strings.ToLower(strings.TrimSpace(args[0]))
			}

			var targets []catalog.Name
			switch which {
			case "all":
				targets = []catalog.Name{catalog.Local, catalog.Portal}
			case string(catalog.Local):
				targets = []catalog.Name{catalog.Local}
			case string(catalog.Portal):
				targets = []catalog.Name{catalog.Portal}
			default:
				return fmt.Errorf("unknown catalog %q (want local, portal, or all)", which)
			}
			if pathFlag != "" && len(targets) != 1 {
				return fmt.Errorf("--path requires naming a single catalog")
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger := ctx.ensureLogger()
				for _, target := range targets {
					path, limit, err := catalogSource(cfg, target, pathFlag)
					if err != nil {
						return err
					}
					count, err := importCatalog(cmd, cfg, st, target, path, limit)
					if err != nil {
						return err
					}
					logger.Info("catalog imported",
						logging.String("catalog", string(target)),
						logging.String("path", path),
						logging.Int("channels", count))
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s channels from %s\n", count, target, path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Catalog file to import (overrides the configured path)")
	return cmd
}

func catalogSource(cfg *config.Config, target catalog.Name, override string) (string, int, error) {
	path := strings.TrimSpace(override)
	var limit int
	switch target {
	case catalog.Local:
		if path == "" {
			path = cfg.Catalogs.LocalPath
		}
		limit = cfg.Catalogs.LocalLimit
	case catalog.Portal:
		if path == "" {
			path = cfg.Catalogs.PortalPath
		}
		limit = cfg.Catalogs.PortalLimit
	}
	if path == "" {
		return "", 0, fmt.Errorf("no %s catalog path configured (set [catalogs] %s_path or pass --path)", target, target)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", 0, err
	}
	return expanded, limit, nil
}

func importCatalog(cmd *cobra.Command, cfg *config.Config, st *store.Store, target catalog.Name, path string, limit int) (int, error) {
	records, err := catalog.LoadFile(path, limit)
	if err != nil {
		return 0, fmt.Errorf("load %s catalog: %w", target, err)
	}

	channels := catalog.Normalize(records)
	if err := st.ReplaceCatalog(cmd.Context(), target, channels); err != nil {
		return 0, fmt.Errorf("store %s catalog: %w", target, err)
	}

	nodes, err := hierarchy.Build(channels)
	if err != nil {
		return 0, fmt.Errorf("build %s hierarchy: %w", target, err)
	}
	if err := st.UpdateHierarchy(cmd.Context(), target, nodes); err != nil {
		return 0, fmt.Errorf("store %s hierarchy: %w", target, err)
	}

	return len(channels), nil
}
