package transcript

import (
	"sort"
	"strings"

	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/transcription"
)

const (
	// DefaultOverlapThreshold is the minimum raw overlap ratio required to
	// accept the best-scoring diarization interval outright.
	DefaultOverlapThreshold = 0.5

	// DefaultContinuityBonus is the score bonus granted to intervals whose
	// speaker matches the previously emitted line's speaker.
	DefaultContinuityBonus = 0.2

	// UnknownSpeaker is the placeholder label used when no diarization
	// intervals exist at all.
	UnknownSpeaker = "UNKNOWN"

	// overlapEpsilon guards the overlap-ratio denominator against
	// zero-length text segments.
	overlapEpsilon = 1e-9
)

// Overlap computes the fraction of interval [aStart, aEnd] covered by
// [bStart, bEnd], clamped to 0 when the intervals do not intersect.
func Overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	overlapStart := aStart
	if bStart > overlapStart {
		overlapStart = bStart
	}
	overlapEnd := aEnd
	if bEnd < overlapEnd {
		overlapEnd = bEnd
	}
	if overlapStart >= overlapEnd {
		return 0
	}
	duration := aEnd - aStart
	if duration <= overlapEpsilon {
		return 0
	}
	return (overlapEnd - overlapStart) / duration
}

// Aligner assigns a speaker to every transcribed text segment by scoring
// its temporal overlap against the diarization intervals. Each Align call
// carries its own previous-speaker state; an Aligner is safe to reuse
// across runs.
type Aligner struct {
	// OverlapThreshold is the minimum raw overlap ratio to accept the
	// best candidate without consulting speaker continuity.
	OverlapThreshold float64
	// ContinuityBonus is added to a candidate's score when its speaker
	// matches the previous line's speaker.
	ContinuityBonus float64
}

// NewAligner creates an Aligner with the default threshold and bonus.
func NewAligner() *Aligner {
	return &Aligner{
		OverlapThreshold: DefaultOverlapThreshold,
		ContinuityBonus:  DefaultContinuityBonus,
	}
}

type candidate struct {
	speaker string
	score   float64
	overlap float64
}

// Align fuses diarization intervals with transcription segments into
// speaker-attributed lines. Segments are processed in input order (the
// continuity heuristic depends on it); diarization intervals may arrive in
// any order. Segments whose text is empty after trimming are dropped.
func (a *Aligner) Align(intervals []diarization.Interval, segments []transcription.Segment) []Line {
	lines := make([]Line, 0, len(segments))
	previousSpeaker := ""

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		candidates := make([]candidate, 0, 4)
		for _, d := range intervals {
			overlap := Overlap(seg.Start, seg.End, d.Start, d.End)
			if overlap <= 0 {
				continue
			}
			score := overlap
			if d.Speaker == previousSpeaker {
				score += a.ContinuityBonus
			}
			candidates = append(candidates, candidate{speaker: d.Speaker, score: score, overlap: overlap})
		}

		var speaker string
		switch {
		case len(candidates) > 0:
			// Stable sort: equal scores keep diarization input order.
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].score > candidates[j].score
			})
			best := candidates[0]
			if best.overlap >= a.OverlapThreshold {
				speaker = best.speaker
			} else if previousSpeaker != "" {
				speaker = previousSpeaker
			} else {
				speaker = best.speaker
			}
		case previousSpeaker != "":
			speaker = previousSpeaker
		default:
			speaker = nearestSpeaker(intervals, seg.Start, seg.End)
		}

		previousSpeaker = speaker
		lines = append(lines, Line{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: speaker,
			Text:    text,
		})
	}

	return lines
}

// AlignStrings is Align followed by wire-format serialization.
func (a *Aligner) AlignStrings(intervals []diarization.Interval, segments []transcription.Segment) []string {
	lines := a.Align(intervals, segments)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// nearestSpeaker returns the speaker of the diarization interval closest in
// time to the segment, or UnknownSpeaker when no intervals exist.
func nearestSpeaker(intervals []diarization.Interval, start, end float64) string {
	speaker := UnknownSpeaker
	minDistance := -1.0
	for _, d := range intervals {
		distance := abs(d.Start - start)
		if de := abs(d.End - end); de < distance {
			distance = de
		}
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			speaker = d.Speaker
		}
	}
	return speaker
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
