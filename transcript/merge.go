package transcript

import "strings"

// Merge collapses consecutive wire-format lines sharing the same speaker
// into single blocks. A block keeps the first line's start time and joins
// the texts with single spaces; the true end time is discarded and replaced
// by the "..." sentinel. Lines that fail to parse are passed through
// unchanged and break the current merge run, so same-speaker runs separated
// by a malformed line are never merged across it.
func Merge(lines []string) []string {
	if len(lines) == 0 {
		return []string{}
	}

	merged := make([]string, 0, len(lines))
	currentSpeaker := ""
	currentStart := ""
	var currentTexts []string

	flush := func() {
		if currentSpeaker == "" || len(currentTexts) == 0 {
			return
		}
		block := RawLine{
			TimeRange: currentStart + " - " + MergedEndSentinel,
			Speaker:   currentSpeaker,
			Text:      strings.Join(currentTexts, " "),
		}
		merged = append(merged, block.String())
	}

	for _, line := range lines {
		raw, ok := ParseRaw(line)
		if !ok {
			flush()
			currentSpeaker = ""
			currentTexts = nil
			merged = append(merged, line)
			continue
		}

		if raw.Speaker == currentSpeaker && currentSpeaker != "" {
			currentTexts = append(currentTexts, raw.Text)
			continue
		}

		flush()
		currentSpeaker = raw.Speaker
		currentStart = raw.StartLabel()
		currentTexts = []string{raw.Text}
	}
	flush()

	return merged
}
