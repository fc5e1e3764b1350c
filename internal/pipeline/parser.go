package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	speakerClose = "</v>"

	// maxLineBytes bounds a single caption line.
	maxLineBytes = 1024 * 1024
)

var (
	identifierPattern = regexp.MustCompile(`^([\p{L}\p{N}_-]+/[\d-]+)`)
	timecodePattern   = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}\.\d{3}) --> (\d{2}:\d{2}:\d{2}\.\d{3})`)
	speakerPattern    = regexp.MustCompile(`^<v (.+?)>`)
)

// recordBuilder accumulates one caption block until a blank line or EOF.
type recordBuilder struct {
	id       string
	eventID  string
	sequence string
	start    string
	end      string
	hasStart bool
	speaker  *string
	text     strings.Builder
}

// complete reports whether the block carries a timecode and may be emitted.
func (b *recordBuilder) complete() bool {
	return b.hasStart
}

func (b *recordBuilder) appendText(fragment string) {
	b.text.WriteString(strings.TrimSpace(fragment))
	b.text.WriteByte(' ')
}

// build returns an independent snapshot of the accumulated block.
func (b *recordBuilder) build() RawRecord {
	rec := RawRecord{
		ID:       b.id,
		EventID:  b.eventID,
		Sequence: b.sequence,
		Start:    b.start,
		End:      b.end,
		Text:     strings.TrimSpace(b.text.String()),
	}
	if b.speaker != nil {
		name := *b.speaker
		rec.Speaker = &name
	}
	return rec
}

// Parse scans caption text and returns one RawRecord per timed block, in file order.
// Blocks without a timecode are dropped.
func Parse(r io.Reader) ([]RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []RawRecord
	cur := &recordBuilder{}
	lineNo := 0

	flush := func() {
		if !cur.complete() {
			return
		}
		records = append(records, cur.build())
		cur = &recordBuilder{}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flush()
			continue
		}

		if m := identifierPattern.FindStringSubmatch(line); m != nil {
			eventID, sequence, err := splitIdentifier(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur.id = m[1]
			cur.eventID = eventID
			cur.sequence = sequence
			continue
		}

		if m := timecodePattern.FindStringSubmatch(line); m != nil {
			cur.start, cur.end = m[1], m[2]
			cur.hasStart = true
			continue
		}

		if m := speakerPattern.FindStringSubmatch(line); m != nil {
			name := m[1]
			cur.speaker = &name
			_, rest, _ := strings.Cut(line, ">")
			if before, _, found := strings.Cut(rest, speakerClose); found {
				rest = before
			}
			cur.appendText(rest)
			continue
		}

		if cur.speaker != nil {
			before, _, _ := strings.Cut(line, speakerClose)
			cur.appendText(before)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan captions: %w", err)
	}

	flush()
	return records, nil
}

// splitIdentifier breaks "<namespace>/<event>-<sequence>" into its numeric parts.
func splitIdentifier(id string) (string, string, error) {
	_, tail, ok := strings.Cut(id, "/")
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no namespace separator", ErrMalformedIdentifier, id)
	}
	parts := strings.Split(tail, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q: want <event>-<sequence>, got %d fields", ErrMalformedIdentifier, id, len(parts))
	}
	return parts[0], parts[1], nil
}
