package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/pipeline"

	"gopkg.in/yaml.v3"
)

// Format names an output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatText Format = "txt"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatSRT, FormatVTT, FormatText}

// Options tunes serialization.
type Options struct {
	Indent       int // JSON indent width; 0 writes compact JSON
	CharsPerLine int // line wrap width for srt/vtt cues
}

// DefaultOptions returns four-space JSON indentation and 42-column cue wrapping.
func DefaultOptions() Options {
	return Options{Indent: 4, CharsPerLine: 42}
}

// ParseFormat validates a format name. "yml" and "text" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// FormatFromPath infers a format from the output file extension, falling
// back to JSON for unknown or missing extensions.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatJSON
}

// Extension returns the conventional file extension, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Marshal serializes turns in the given format.
func Marshal(turns []pipeline.TurnRecord, format Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, turns, format, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes turns to w in the given format.
func Encode(w io.Writer, turns []pipeline.TurnRecord, format Format, opts Options) error {
	if turns == nil {
		turns = []pipeline.TurnRecord{}
	}

	switch format {
	case FormatJSON:
		return encodeJSON(w, turns, opts.Indent)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(turns); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatSRT:
		_, err := io.WriteString(w, generateSRT(turns, opts.CharsPerLine))
		return err
	case FormatVTT:
		_, err := io.WriteString(w, generateVTT(turns, opts.CharsPerLine))
		return err
	case FormatText:
		_, err := io.WriteString(w, generateText(turns))
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func encodeJSON(w io.Writer, turns []pipeline.TurnRecord, indent int) error {
	enc := json.NewEncoder(w)
	// Speaker names and text are written verbatim; no HTML escaping of <, > or &.
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(turns); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
