package pipeline

import "github.com/skillsenselab/meetscribe/export"

// SpeakerResult carries one speaker's text and summary.
type SpeakerResult struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Summary  string `json:"summary"`
	Fallback bool   `json:"fallback"`
}

// Result aggregates everything a completed run produced.
type Result struct {
	RunID         string                   `json:"run_id"`
	AudioPath     string                   `json:"audio_path"`
	RawTranscript string                   `json:"raw_transcript"`
	PlainText     string                   `json:"plain_text"`
	CleanedText   string                   `json:"cleaned_text"`
	FullReport    string                   `json:"full_report"`
	ShortSummary  string                   `json:"short_summary"`
	Speakers      []SpeakerResult          `json:"speakers"`
	NumSpeakers   int                      `json:"num_speakers"`
	Duration      float64                  `json:"duration"`
	Documents     map[export.Format]string `json:"documents"`

	// Degraded is true when any summarization step fell back to
	// truncation instead of a model-generated summary.
	Degraded bool `json:"degraded"`
}
