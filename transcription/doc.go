// Package transcription defines the speech-to-text collaborator interface
// and common types.
//
// Backends return segments in chronological order; consumers should degrade
// gracefully rather than fail if a backend violates that.
//
// # Backends
//
//   - transcription/whisper: Whisper HTTP sidecar
package transcription
