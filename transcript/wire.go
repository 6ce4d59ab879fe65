package transcript

import (
	"fmt"
	"strings"
)

// MergedEndSentinel is the end-time placeholder used for merged blocks,
// whose true end time is not tracked.
const MergedEndSentinel = "..."

// FormatTime converts a second offset into a fixed-width mm:ss.s display
// string (zero-padded minutes, zero-padded seconds with one decimal digit).
func FormatTime(seconds float64) string {
	minutes := int(seconds) / 60
	secs := seconds - float64(minutes*60)
	return fmt.Sprintf("%02d:%04.1f", minutes, secs)
}

// Line is one fused transcript line: a transcribed text span joined with
// the speaker chosen for it.
type Line struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// String serializes the line into the canonical wire format.
func (l Line) String() string {
	return fmt.Sprintf("[%s - %s] [%s] %s", FormatTime(l.Start), FormatTime(l.End), l.Speaker, l.Text)
}

// RawLine is the parsed form of one wire-format line. TimeRange keeps the
// time span as text so merged lines with the "..." end sentinel round-trip.
type RawLine struct {
	TimeRange string // e.g. "00:00.0 - 00:02.0" or "00:12.5 - ..."
	Speaker   string
	Text      string
}

// ParseRaw parses one wire-format line. It reports false for lines that do
// not split into the three ]-delimited parts of the format; callers decide
// whether such lines are passed through or dropped.
func ParseRaw(line string) (RawLine, bool) {
	parts := strings.SplitN(line, "] ", 3)
	if len(parts) != 3 {
		return RawLine{}, false
	}
	if !strings.HasPrefix(parts[0], "[") || !strings.HasPrefix(parts[1], "[") {
		return RawLine{}, false
	}
	return RawLine{
		TimeRange: parts[0][1:],
		Speaker:   parts[1][1:],
		Text:      parts[2],
	}, true
}

// String serializes the raw line back into the wire format.
func (r RawLine) String() string {
	return fmt.Sprintf("[%s] [%s] %s", r.TimeRange, r.Speaker, r.Text)
}

// StartLabel returns the formatted start time of the line's time range.
func (r RawLine) StartLabel() string {
	if idx := strings.Index(r.TimeRange, " - "); idx >= 0 {
		return r.TimeRange[:idx]
	}
	return r.TimeRange
}
