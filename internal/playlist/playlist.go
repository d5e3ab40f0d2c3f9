package playlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lineup/internal/match"
	"lineup/internal/textutil"
)

// idPlaceholder is replaced with the portal channel id in the URL template.
const idPlaceholder = "{id}"

// Options control playlist generation.
type Options struct {
	// URLTemplate builds stream URLs; it must contain "{id}".
	URLTemplate string
	// GroupTitle fills the group-title attribute on every entry.
	GroupTitle string
	// IncludeReview keeps matches flagged for manual review. They are
	// excluded by default.
	IncludeReview bool
}

// Write renders an extended M3U playlist for a run's matches. Entries keep
// report order; local names become the display titles, portal ids become
// the stream URLs.
func Write(w io.Writer, matches []match.Candidate, opts Options) (int, error) {
	template := strings.TrimSpace(opts.URLTemplate)
	if template == "" {
		return 0, errors.New("playlist url template is empty")
	}
	if !strings.Contains(template, idPlaceholder) {
		return 0, fmt.Errorf("playlist url template must contain %q", idPlaceholder)
	}

	var b strings.Builder
	b.WriteString("#EXTM3U\n")

	written := 0
	for _, candidate := range matches {
		if candidate.NeedsReview && !opts.IncludeReview {
			continue
		}
		name := strings.TrimSpace(candidate.LocalName)
		if name == "" {
			name = strings.TrimSpace(candidate.PortalName)
		}
		b.WriteString(`#EXTINF:-1 tvg-id="`)
		b.WriteString(strconv.FormatInt(candidate.PortalID, 10))
		b.WriteString(`" tvg-name="`)
		b.WriteString(escapeAttr(name))
		b.WriteString(`"`)
		if group := strings.TrimSpace(opts.GroupTitle); group != "" {
			b.WriteString(` group-title="`)
			b.WriteString(escapeAttr(group))
			b.WriteString(`"`)
		}
		b.WriteString(",")
		b.WriteString(name)
		b.WriteString("\n")
		b.WriteString(strings.ReplaceAll(template, idPlaceholder, strconv.FormatInt(candidate.PortalID, 10)))
		b.WriteString("\n")
		written++
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return 0, fmt.Errorf("write playlist: %w", err)
	}
	return written, nil
}

// WriteFile renders a playlist into dir, named after the run id and the
// current date. It returns the file path and the number of entries written.
func WriteFile(dir, runID string, matches []match.Candidate, opts Options) (string, int, error) {
	if strings.TrimSpace(dir) == "" {
		return "", 0, errors.New("playlist directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("ensure playlist directory: %w", err)
	}

	name := fmt.Sprintf("lineup-%s-%s.m3u", time.Now().UTC().Format("2006-01-02"), shortRunID(runID))
	path := filepath.Join(dir, textutil.SanitizeFileName(name))

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create playlist: %w", err)
	}

	written, err := Write(file, matches, opts)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, err
	}
	return path, written, nil
}

func shortRunID(runID string) string {
	runID = strings.TrimSpace(runID)
	if len(runID) > 8 {
		return runID[:8]
	}
	if runID == "" {
		return "run"
	}
	return runID
}

func escapeAttr(value string) string {
	return strings.ReplaceAll(value, `"`, "'")
}
