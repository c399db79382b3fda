package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"swissclock.ch/swissclock/timeclock"
)

type Result struct {
	Imported int
	// Duplicates counts rows already imported by an earlier run.
	Duplicates int
	Skipped    []Shift
}

// Import parses a CSV in either layout and loads it into accounting. The
// layout is picked from the header: a Timestamp column means terminal
// punches.
func Import(ctx context.Context, accounting *timeclock.Accounting, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	loc := accounting.Location()

	var entries []timeclock.TimeEntry
	result := &Result{}
	if isPunchExport(data) {
		punches, err := ParsePunchCSV(bytes.NewReader(data), loc)
		if err != nil {
			return nil, err
		}
		entries, result.Skipped = Entries(GroupPunches(punches))
	} else {
		entries, err = ParseEntriesCSV(bytes.NewReader(data), loc)
		if err != nil {
			return nil, err
		}
	}

	stats, err := accounting.Import(ctx, entries)
	result.Imported = stats.Imported
	result.Duplicates = stats.Duplicates
	if err != nil {
		return result, fmt.Errorf("imported %d of %d entries: %w", stats.Imported, len(entries), err)
	}
	return result, nil
}

func isPunchExport(data []byte) bool {
	header, _, _ := strings.Cut(string(data), "\n")
	return strings.Contains(strings.ToLower(header), "timestamp")
}
