package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"lineup/internal/catalog"
	"lineup/internal/hierarchy"
	"lineup/internal/normalize"
)

// ReplaceCatalog atomically replaces one catalog's channels. Hierarchy
// placement is cleared; rebuild it after every import.
func (s *Store) ReplaceCatalog(ctx context.Context, cat catalog.Name, channels []catalog.Channel) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown catalog %q", cat)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM channels WHERE catalog = ?`, string(cat)); err != nil {
		return fmt.Errorf("clear catalog %s: %w", cat, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO channels (
        catalog, id, name, stream_count, base_name, norm_key,
        resolution, country, lang, variant, imported_at
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	importedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, channel := range channels {
		if _, err := stmt.ExecContext(ctx,
			string(cat),
			channel.ID,
			channel.Name,
			channel.StreamCount,
			channel.Norm.BaseName,
			channel.Norm.Key,
			nullableString(string(channel.Norm.Resolution)),
			nullableString(channel.Norm.Country),
			nullableString(channel.Norm.Lang),
			nullableString(channel.Norm.Variant),
			importedAt,
		); err != nil {
			return fmt.Errorf("insert channel %d: %w", channel.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Channels returns one catalog's channels ordered by id.
func (s *Store) Channels(ctx context.Context, cat catalog.Name) ([]catalog.Channel, error) {
	stored, err := s.StoredChannels(ctx, cat)
	if err != nil {
		return nil, err
	}
	channels := make([]catalog.Channel, len(stored))
	for i, sc := range stored {
		channels[i] = sc.Channel
	}
	return channels, nil
}

// StoredChannels returns one catalog's channels with hierarchy placement,
// ordered by id.
func (s *Store) StoredChannels(ctx context.Context, cat catalog.Name) ([]StoredChannel, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown catalog %q", cat)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
        id, name, stream_count, base_name, norm_key,
        resolution, country, lang, variant,
        root_id, parent_id, is_root, imported_at
    FROM channels WHERE catalog = ? ORDER BY id`, string(cat))
	if err != nil {
		return nil, fmt.Errorf("query catalog %s: %w", cat, err)
	}
	defer rows.Close()

	var channels []StoredChannel
	for rows.Next() {
		var (
			sc          StoredChannel
			resolution  sql.NullString
			country     sql.NullString
			lang        sql.NullString
			variant     sql.NullString
			rootID      sql.NullInt64
			parentID    sql.NullInt64
			isRoot      sql.NullInt64
			importedRaw string
		)
		if err := rows.Scan(
			&sc.Channel.ID,
			&sc.Channel.Name,
			&sc.Channel.StreamCount,
			&sc.Channel.Norm.BaseName,
			&sc.Channel.Norm.Key,
			&resolution,
			&country,
			&lang,
			&variant,
			&rootID,
			&parentID,
			&isRoot,
			&importedRaw,
		); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		sc.Catalog = cat
		sc.Channel.Norm.Input = sc.Channel.Name
		sc.Channel.Norm.Resolution = normalize.Resolution(resolution.String)
		sc.Channel.Norm.Country = country.String
		sc.Channel.Norm.Lang = lang.String
		sc.Channel.Norm.Variant = variant.String
		if rootID.Valid {
			node := hierarchy.Node{
				ID:     sc.Channel.ID,
				RootID: rootID.Int64,
				IsRoot: isRoot.Int64 != 0,
			}
			if parentID.Valid {
				parent := parentID.Int64
				node.ParentID = &parent
				node.IsVariant = true
			}
			sc.Node = &node
		}
		if imported, err := parseTimeString(importedRaw); err == nil {
			sc.ImportedAt = imported
		}
		channels = append(channels, sc)
	}
	return channels, rows.Err()
}

// UpdateHierarchy writes hierarchy placement for one catalog. Every channel
// in the catalog must appear in nodes; channels missing from nodes keep a
// cleared placement.
func (s *Store) UpdateHierarchy(ctx context.Context, cat catalog.Name, nodes map[int64]hierarchy.Node) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown catalog %q", cat)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin hierarchy tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE channels SET root_id = NULL, parent_id = NULL, is_root = 0 WHERE catalog = ?`,
		string(cat),
	); err != nil {
		return fmt.Errorf("clear hierarchy: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE channels SET root_id = ?, parent_id = ?, is_root = ? WHERE catalog = ? AND id = ?`)
	if err != nil {
		return fmt.Errorf("prepare hierarchy update: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		node := nodes[id]
		if _, err := stmt.ExecContext(ctx,
			node.RootID,
			nullableInt64(node.ParentID),
			boolToInt(node.IsRoot),
			string(cat),
			id,
		); err != nil {
			return fmt.Errorf("update hierarchy for channel %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit hierarchy: %w", err)
	}
	return nil
}

// CatalogCounts returns the number of stored channels per catalog.
func (s *Store) CatalogCounts(ctx context.Context) (map[catalog.Name]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT catalog, COUNT(1) FROM channels GROUP BY catalog`)
	if err != nil {
		return nil, fmt.Errorf("count catalogs: %w", err)
	}
	defer rows.Close()

	counts := make(map[catalog.Name]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[catalog.Name(name)] = count
	}
	return counts, rows.Err()
}
