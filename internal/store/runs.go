package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lineup/internal/match"
)

// SaveRun persists a match report as a new run and returns the run id.
// Unmatched rows carry the local channel names resolved through localNames;
// ids without an entry are stored with an empty name.
func (s *Store) SaveRun(ctx context.Context, report *match.Report, localNames map[int64]string) (string, error) {
	if report == nil {
		return "", errors.New("report is nil")
	}

	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO match_runs (
        id, created_at, local_count, portal_count, exact_count, fuzzy_count,
        avg_confidence, match_rate, high_count, medium_count, low_count
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		createdAt,
		report.Stats.LocalCount,
		report.Stats.PortalCount,
		report.Stats.ExactCount,
		report.Stats.FuzzyCount,
		report.Stats.AvgConfidence,
		report.Stats.MatchRate,
		report.Stats.Histogram.High,
		report.Stats.Histogram.Medium,
		report.Stats.Histogram.Low,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	matchStmt, err := tx.PrepareContext(ctx, `INSERT INTO matched_channels (
        run_id, local_id, portal_id, local_name, portal_name,
        name_similarity, confidence, match_type, needs_review, position
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare match insert: %w", err)
	}
	defer matchStmt.Close()

	for i, candidate := range report.Matches {
		if _, err := matchStmt.ExecContext(ctx,
			runID,
			candidate.LocalID,
			candidate.PortalID,
			candidate.LocalName,
			candidate.PortalName,
			candidate.NameSimilarity,
			candidate.Confidence,
			string(candidate.Type),
			boolToInt(candidate.NeedsReview),
			i,
		); err != nil {
			return "", fmt.Errorf("insert match for local %d: %w", candidate.LocalID, err)
		}
	}

	unmatchedStmt, err := tx.PrepareContext(ctx, `INSERT INTO unmatched_channels (
        run_id, local_id, local_name, position
    ) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare unmatched insert: %w", err)
	}
	defer unmatchedStmt.Close()

	for i, localID := range report.Unmatched {
		if _, err := unmatchedStmt.ExecContext(ctx, runID, localID, localNames[localID], i); err != nil {
			return "", fmt.Errorf("insert unmatched local %d: %w", localID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `id, created_at, local_count, portal_count, exact_count, fuzzy_count,
    avg_confidence, match_rate, high_count, medium_count, low_count`

// LatestRun returns the most recent run, or nil when no run exists.
func (s *Store) LatestRun(ctx context.Context) (*RunSummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM match_runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Run returns one run by id, or nil when absent.
func (s *Store) Run(ctx context.Context, runID string) (*RunSummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM match_runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// Runs returns runs newest first, at most limit (0 means all).
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT ` + runColumns + ` FROM match_runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// MatchesForRun returns a run's matches in report order.
func (s *Store) MatchesForRun(ctx context.Context, runID string) ([]match.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
        local_id, portal_id, local_name, portal_name,
        name_similarity, confidence, match_type, needs_review
    FROM matched_channels WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []match.Candidate
	for rows.Next() {
		var (
			candidate   match.Candidate
			matchType   string
			needsReview int
		)
		if err := rows.Scan(
			&candidate.LocalID,
			&candidate.PortalID,
			&candidate.LocalName,
			&candidate.PortalName,
			&candidate.NameSimilarity,
			&candidate.Confidence,
			&matchType,
			&needsReview,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		candidate.Type = match.Type(matchType)
		candidate.NeedsReview = needsReview != 0
		matches = append(matches, candidate)
	}
	return matches, rows.Err()
}

// UnmatchedForRun returns a run's unmatched local channels in report order.
func (s *Store) UnmatchedForRun(ctx context.Context, runID string) ([]UnmatchedChannel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT local_id, local_name
    FROM unmatched_channels WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query unmatched: %w", err)
	}
	defer rows.Close()

	var unmatched []UnmatchedChannel
	for rows.Next() {
		var entry UnmatchedChannel
		if err := rows.Scan(&entry.LocalID, &entry.LocalName); err != nil {
			return nil, fmt.Errorf("scan unmatched: %w", err)
		}
		unmatched = append(unmatched, entry)
	}
	return unmatched, rows.Err()
}

// PruneRuns deletes all but the newest keep runs. Returns the number of runs
// removed.
func (s *Store) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM match_runs WHERE id NOT IN (
        SELECT id FROM match_runs ORDER BY created_at DESC, id DESC LIMIT ?
    )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*RunSummary, error) {
	var (
		run        RunSummary
		createdRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&createdRaw,
		&run.LocalCount,
		&run.PortalCount,
		&run.ExactCount,
		&run.FuzzyCount,
		&run.AvgConfidence,
		&run.MatchRate,
		&run.HighCount,
		&run.MediumCount,
		&run.LowCount,
	); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		run.CreatedAt = created
	}
	return &run, nil
}
