package pipeline

// RawRecord is one caption block as it appears in the source file.
type RawRecord struct {
	ID       string  `json:"id" yaml:"id"`
	EventID  string  `json:"event_id" yaml:"event_id"`
	Sequence string  `json:"sequence" yaml:"sequence"`
	Start    string  `json:"start" yaml:"start"`
	End      string  `json:"end" yaml:"end"`
	Speaker  *string `json:"speaker" yaml:"speaker"` // nil when no <v> tag appeared
	Text     string  `json:"text" yaml:"text"`
}

// EventRecord is all fragments of one caption event merged together.
type EventRecord struct {
	ID      string  `json:"id" yaml:"id"`
	EventID string  `json:"event_id" yaml:"event_id"`
	Start   string  `json:"start" yaml:"start"`
	End     string  `json:"end" yaml:"end"`
	Speaker *string `json:"speaker" yaml:"speaker"`
	Text    string  `json:"text" yaml:"text"`
}

// TurnRecord is a run of consecutive events attributed to the same speaker.
type TurnRecord struct {
	EventRecord    `yaml:",inline"`
	CollatedEvents []string `json:"collated_events" yaml:"collated_events"`
}

// SpeakerName returns the speaker label, or "" when the turn is unattributed.
func (e EventRecord) SpeakerName() string {
	if e.Speaker == nil {
		return ""
	}
	return *e.Speaker
}

// sameSpeaker treats two missing speakers as equal.
func sameSpeaker(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Stats summarises one pipeline run.
type Stats struct {
	Records  int `json:"records"`
	Events   int `json:"events"`
	Turns    int `json:"turns"`
	Speakers int `json:"speakers"`
}

// Result is the output of Process.
type Result struct {
	Turns []TurnRecord
	Stats Stats
}
