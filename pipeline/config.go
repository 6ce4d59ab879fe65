package pipeline

import "github.com/skillsenselab/meetscribe/transcript"

// Config holds per-run tunables for the orchestrator.
type Config struct {
	// Language forwarded to the transcription provider (ISO 639-1).
	Language string `mapstructure:"language"`

	// OverlapThreshold and ContinuityBonus parameterize speaker
	// alignment. See transcript.Aligner.
	OverlapThreshold float64 `mapstructure:"overlap_threshold"`
	ContinuityBonus  float64 `mapstructure:"continuity_bonus"`

	// SkipMerge disables the collapsing of consecutive same-speaker lines
	// before extraction. Merging is on by default.
	SkipMerge bool `mapstructure:"skip_merge"`

	// SaveIntermediates persists per-stage artifacts (raw transcript,
	// plain text, cleaned text) alongside the final documents.
	SaveIntermediates bool `mapstructure:"save_intermediates"`

	// SpeakerSummaryMaxLength and SpeakerSummaryMinLength bound the
	// per-speaker summaries requested from the summarization provider.
	SpeakerSummaryMaxLength int `mapstructure:"speaker_summary_max_length"`
	SpeakerSummaryMinLength int `mapstructure:"speaker_summary_min_length"`

	// SpeakerFallbackLength and ReportFallbackLength bound the truncation
	// fallbacks used when summarization is unavailable.
	SpeakerFallbackLength int `mapstructure:"speaker_fallback_length"`
	ReportFallbackLength  int `mapstructure:"report_fallback_length"`
}

// ApplyDefaults fills zero fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = "fr"
	}
	if c.OverlapThreshold == 0 {
		c.OverlapThreshold = transcript.DefaultOverlapThreshold
	}
	if c.ContinuityBonus == 0 {
		c.ContinuityBonus = transcript.DefaultContinuityBonus
	}
	if c.SpeakerSummaryMaxLength == 0 {
		c.SpeakerSummaryMaxLength = 100
	}
	if c.SpeakerSummaryMinLength == 0 {
		c.SpeakerSummaryMinLength = 30
	}
	if c.SpeakerFallbackLength == 0 {
		c.SpeakerFallbackLength = 200
	}
	if c.ReportFallbackLength == 0 {
		c.ReportFallbackLength = 500
	}
}
