package summarize

import (
	"context"

	"github.com/skillsenselab/meetscribe/provider"
)

// Request holds parameters for an extractive summarization call.
type Request struct {
	// Text is the cleaned text to summarize.
	Text string `json:"text"`
	// MaxLength caps the summary length in tokens (0 = backend default).
	MaxLength int `json:"max_length,omitempty"`
	// MinLength floors the summary length in tokens (0 = backend default).
	MinLength int `json:"min_length,omitempty"`
}

// Summary holds the result of an extractive summarization call.
type Summary struct {
	// Text is the summary text.
	Text string `json:"text"`
}

// SpeakerSummary pairs a speaker label with that speaker's summary, in
// first-appearance order.
type SpeakerSummary struct {
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// ReportRequest holds the context for a structured whole-meeting report.
type ReportRequest struct {
	// CleanedText is the normalized full transcript.
	CleanedText string `json:"cleaned_text"`
	// Speakers carries per-speaker summaries for the report's
	// participant section.
	Speakers []SpeakerSummary `json:"speakers,omitempty"`
}

// Report holds the structured whole-meeting report.
type Report struct {
	// FullReport is the complete structured meeting report.
	FullReport string `json:"full_report"`
	// ShortSummary is a few-sentence abstract of the meeting.
	ShortSummary string `json:"short_summary"`
}

// Provider is the interface that extractive summarization backends must
// implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Summarize produces a short summary of the request text.
	Summarize(ctx context.Context, req Request) (*Summary, error)
}

// ReportProvider is the interface that structured-report backends must
// implement.
type ReportProvider interface {
	provider.Provider

	// GenerateReport produces the structured whole-meeting report.
	GenerateReport(ctx context.Context, req ReportRequest) (*Report, error)
}

// NewRegistry creates a new provider registry for extractive backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// NewReportRegistry creates a new provider registry for report backends.
func NewReportRegistry() *provider.Registry[ReportProvider] {
	return provider.NewRegistry[ReportProvider]()
}
