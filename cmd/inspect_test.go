package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/pipeline"
)

func TestRenderTurns(t *testing.T) {
	res, err := pipeline.Process(strings.NewReader(`WEBVTT

ch/1-1
00:00:01.000 --> 00:00:02.000
<v Alice>Hello</v>

ch/2-1
00:00:02.000 --> 00:00:03.000
<v Alice>again</v>

ch/3-1
00:00:03.000 --> 00:00:04.000
<v Bob>This sentence is long enough to be trimmed by the preview column</v>
`))
	if err != nil {
		t.Fatal(err)
	}

	out := renderTurns(res, 20, false)

	for _, want := range []string{"Alice", "Bob", "1,2", "Hello again", "3 events", "2 turns", "2 speakers"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "preview column") {
		t.Errorf("text column not trimmed to width:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected ANSI escapes without colorize:\n%s", out)
	}
}

func TestShouldColorize_NonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Error("buffers are never terminals")
	}
}
