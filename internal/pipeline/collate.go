package pipeline

import (
	"slices"
)

// CollateEvents merges sorted raw records into one EventRecord per event id.
// Events keep the order in which their id is first seen. Later fragments
// extend text and end; id, start and speaker stay as first seen.
func CollateEvents(records []RawRecord) []EventRecord {
	index := make(map[string]int, len(records))
	events := make([]EventRecord, 0, len(records))

	for _, rec := range records {
		if i, ok := index[rec.EventID]; ok {
			ev := &events[i]
			ev.Text += " " + rec.Text
			ev.End = rec.End
			continue
		}
		index[rec.EventID] = len(events)
		events = append(events, EventRecord{
			ID:      rec.ID,
			EventID: rec.EventID,
			Start:   rec.Start,
			End:     rec.End,
			Speaker: rec.Speaker,
			Text:    rec.Text,
		})
	}
	return events
}

// SortEvents returns a copy of events ordered by numeric event id.
func SortEvents(events []EventRecord) ([]EventRecord, error) {
	keys := make(map[string]int64, len(events))
	for _, ev := range events {
		n, err := parseNumeric("event_id", ev.EventID, ev.ID)
		if err != nil {
			return nil, err
		}
		keys[ev.EventID] = n
	}

	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b EventRecord) int {
		return compareInt(keys[a.EventID], keys[b.EventID])
	})
	return out, nil
}

// CollateSpeakers folds consecutive events with the same speaker into turns.
// Events must already be in ascending event id order.
func CollateSpeakers(events []EventRecord) []TurnRecord {
	turns := make([]TurnRecord, 0)
	var open *TurnRecord

	for _, ev := range events {
		if open != nil && sameSpeaker(open.Speaker, ev.Speaker) {
			open.Text += " " + ev.Text
			open.End = ev.End
			open.CollatedEvents = append(open.CollatedEvents, ev.EventID)
			continue
		}
		if open != nil {
			turns = append(turns, *open)
		}
		open = &TurnRecord{
			EventRecord:    ev,
			CollatedEvents: []string{ev.EventID},
		}
	}
	if open != nil {
		turns = append(turns, *open)
	}
	return turns
}
