// Package pipeline sequences a full meeting-transcription run: audio
// conversion, diarization and transcription, speaker alignment, optional
// merging, extraction, cleaning, summarization, and document export.
//
// Each run is driven by one Orchestrator call and owns all of its state;
// concurrent runs share nothing. External model calls are blocking and may
// take minutes; cancellation is the caller's responsibility via ctx.
//
// Failure policy follows the stage taxonomy: diarization, transcription,
// and export failures are fatal to the run, while summarization failures
// degrade to a deterministic truncation fallback and the run continues.
package pipeline
