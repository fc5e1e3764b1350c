package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Process runs the full caption pipeline: parse, sort, collate by event,
// re-sort by event id, then collate by speaker.
func Process(r io.Reader) (*Result, error) {
	records, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	// Stage 1: order fragments within and across events.
	sorted, err := SortRecords(records)
	if err != nil {
		return nil, fmt.Errorf("sort records: %w", err)
	}

	// Stage 2: one record per event, then an explicit resort by event id.
	events, err := SortEvents(CollateEvents(sorted))
	if err != nil {
		return nil, fmt.Errorf("sort events: %w", err)
	}

	// Stage 3: speaker turns.
	turns := CollateSpeakers(events)

	stats := Stats{
		Records:  len(records),
		Events:   len(events),
		Turns:    len(turns),
		Speakers: countSpeakers(turns),
	}
	slog.Debug("pipeline complete",
		"records", stats.Records,
		"events", stats.Events,
		"turns", stats.Turns,
		"speakers", stats.Speakers)

	return &Result{Turns: turns, Stats: stats}, nil
}

// ProcessFile opens path and runs Process over its contents.
func ProcessFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Process(f)
}

func countSpeakers(turns []TurnRecord) int {
	seen := make(map[string]struct{})
	unattributed := false
	for _, t := range turns {
		if t.Speaker == nil {
			unattributed = true
			continue
		}
		seen[*t.Speaker] = struct{}{}
	}
	n := len(seen)
	if unattributed {
		n++
	}
	return n
}
