package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnsupportedFormat indicates a catalog file extension the loader does not
// understand.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// LoadFile reads catalog records from a CSV or JSON file, chosen by extension.
// A limit > 0 truncates the catalog for reduced-size runs; 0 loads everything.
func LoadFile(path string, limit int) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(file, limit)
	case ".json":
		return ReadJSON(file, limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV parses records from CSV with an id,name,stream_count header.
// Column order follows the header; stream_count is optional and defaults to 0.
func ReadCSV(r io.Reader, limit int) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIdx, nameIdx, streamIdx := -1, -1, -1
	for i, column := range header {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "id":
			idIdx = i
		case "name":
			nameIdx = i
		case "stream_count", "streams":
			streamIdx = i
		}
	}
	if idIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("catalog csv must have id and name columns, got %v", header)
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(row[idIdx]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse id %q: %w", line, row[idIdx], err)
		}
		record := Record{ID: id, Name: strings.TrimSpace(row[nameIdx])}
		if streamIdx >= 0 && streamIdx < len(row) {
			if count, err := strconv.Atoi(strings.TrimSpace(row[streamIdx])); err == nil && count > 0 {
				record.StreamCount = count
			}
		}
		records = append(records, record)
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records, nil
}

type jsonRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	StreamCount int    `json:"stream_count"`
}

// ReadJSON parses records from a JSON array of {id, name, stream_count}.
func ReadJSON(r io.Reader, limit int) ([]Record, error) {
	var raw []jsonRecord
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	records := make([]Record, 0, len(raw))
	for _, entry := range raw {
		count := entry.StreamCount
		if count < 0 {
			count = 0
		}
		records = append(records, Record{
			ID:          entry.ID,
			Name:        strings.TrimSpace(entry.Name),
			StreamCount: count,
		})
	}
	return records, nil
}
