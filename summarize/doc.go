// Package summarize defines the summarization collaborator interfaces: an
// extractive Provider for short per-speaker summaries and a ReportProvider
// for the structured whole-meeting report.
//
// Both kinds of backend may fail; the pipeline recovers with the Truncate
// fallback rather than aborting a run.
//
// # Backends
//
//   - summarize/bart: BART HTTP sidecar (extractive)
//   - summarize/groq: Groq chat-completions API (structured report)
package summarize
