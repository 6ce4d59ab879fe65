// Package transcript builds the speaker-attributed transcript: it fuses
// diarization intervals with transcribed text segments, merges consecutive
// same-speaker lines, and projects the fused transcript into plain text or
// per-speaker text.
//
// Components exchange fused lines in a textual wire format:
//
//	[mm:ss.s - mm:ss.s] [SPEAKER_00] text
//
// The format is deliberate: it is human-readable, survives persistence as an
// intermediate artifact, and lets any upstream producer of the same format
// feed the merge and extraction stages. ParseRaw and RawLine.String are the
// only parse/serialize pair for it; no other code in the repository should
// pattern-match the format directly.
package transcript
