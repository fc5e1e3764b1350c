package pipeline

import (
	"slices"
	"strconv"
)

type sortKey struct {
	event    int64
	sequence int64
}

// SortRecords returns a copy of records ordered by numeric event id, then
// numeric sequence. Ties keep their original relative order.
func SortRecords(records []RawRecord) ([]RawRecord, error) {
	type keyed struct {
		key sortKey
		rec RawRecord
	}

	items := make([]keyed, 0, len(records))
	for _, rec := range records {
		event, err := parseNumeric("event_id", rec.EventID, rec.ID)
		if err != nil {
			return nil, err
		}
		seq, err := parseNumeric("sequence", rec.Sequence, rec.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, keyed{key: sortKey{event: event, sequence: seq}, rec: rec})
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if c := compareInt(a.key.event, b.key.event); c != 0 {
			return c
		}
		return compareInt(a.key.sequence, b.key.sequence)
	})

	out := make([]RawRecord, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out, nil
}

func parseNumeric(field, value, recordID string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &NumericFieldError{Field: field, Value: value, RecordID: recordID, Err: err}
	}
	return n, nil
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
