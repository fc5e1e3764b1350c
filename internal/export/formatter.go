package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/pipeline"
)

// breakPunctuation marks characters after which a cue line may be wrapped.
var breakPunctuation = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, ';': {}, ':': {}, ',': {},
	')': {}, ']': {}, '}': {}, '-': {}, '\u2026': {},
	// CJK full-width stops and commas
	'\u3002': {}, '\uff01': {}, '\uff1f': {}, '\uff0c': {}, '\u3001': {},
}

// formatSRTTime converts a caption timestamp HH:MM:SS.mmm to SRT's HH:MM:SS,mmm.
func formatSRTTime(ts string) string {
	return strings.Replace(ts, ".", ",", 1)
}

// cueText prefixes the speaker label when one is known.
func cueText(turn pipeline.TurnRecord) string {
	text := strings.TrimSpace(turn.Text)
	if turn.Speaker == nil {
		return text
	}
	return *turn.Speaker + ": " + text
}

func generateSRT(turns []pipeline.TurnRecord, maxCPL int) string {
	if len(turns) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, turn := range turns {
		text := optimizeTextDisplay(cueText(turn), maxCPL)

		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1, formatSRTTime(turn.Start), formatSRTTime(turn.End), text)
		if i < len(turns)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// generateVTT writes WebVTT cues keyed by the turn's source id, with voice
// spans for attributed turns. Unattributed turns are written as bare cue
// text; Parse only keeps text inside a voice span, so reading such a file
// back yields those turns with empty text.
func generateVTT(turns []pipeline.TurnRecord, maxCPL int) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	for _, turn := range turns {
		sb.WriteByte('\n')
		if turn.ID != "" {
			sb.WriteString(turn.ID)
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s --> %s\n", turn.Start, turn.End)

		text := optimizeTextDisplay(strings.TrimSpace(turn.Text), maxCPL)
		if turn.Speaker != nil {
			fmt.Fprintf(&sb, "<v %s>%s</v>\n", *turn.Speaker, text)
		} else {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// generateText renders one line per turn: "[start - end] Speaker: text".
func generateText(turns []pipeline.TurnRecord) string {
	var sb strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&sb, "[%s - %s] %s\n", turn.Start, turn.End, cueText(turn))
	}
	return sb.String()
}

// optimizeTextDisplay returns text on a single line if it fits within maxCPL,
// otherwise wraps it so that no line exceeds maxCPL runes.
func optimizeTextDisplay(text string, maxCPL int) string {
	text = strings.TrimSpace(text)
	if text == "" || maxCPL <= 0 {
		return text
	}
	if utf8.RuneCountInString(text) <= maxCPL {
		return text
	}
	return splitTextIntoLines(text, maxCPL)
}

// splitTextIntoLines wraps text at findSplitPosition break points until the
// remainder fits on one line.
func splitTextIntoLines(text string, maxCPL int) string {
	var lines []string
	remaining := strings.TrimSpace(text)
	for utf8.RuneCountInString(remaining) > maxCPL {
		runes := []rune(remaining)
		splitPos := findSplitPosition(remaining, maxCPL)
		lines = append(lines, strings.TrimSpace(string(runes[:splitPos])))
		remaining = strings.TrimSpace(string(runes[splitPos:]))
	}
	if remaining != "" {
		lines = append(lines, remaining)
	}
	return strings.Join(lines, "\n")
}

// findSplitPosition finds the best position to split text at or before maxLen (in runes).
// Returns a rune-index for the split point.
func findSplitPosition(text string, maxLen int) int {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return len(runes)
	}

	searchEnd := min(maxLen+1, len(runes))

	bestPos := -1
	for i := searchEnd - 1; i > 0; i-- {
		r := runes[i]
		if r == ' ' {
			bestPos = i
			break
		}
		if _, ok := breakPunctuation[r]; ok && i < maxLen {
			bestPos = i + 1
			break
		}
	}

	if bestPos <= 0 {
		bestPos = maxLen
	}
	return bestPos
}
