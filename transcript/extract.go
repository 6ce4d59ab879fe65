package transcript

import "strings"

// ExtractPlainText collects the spoken text of every parseable wire-format
// line in raw, joined with single spaces. Unparseable lines are dropped
// silently.
func ExtractPlainText(raw string) string {
	var texts []string
	for _, line := range strings.Split(raw, "\n") {
		parsed, ok := ParseRaw(line)
		if !ok {
			continue
		}
		text := strings.TrimSpace(parsed.Text)
		if text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " ")
}

// SpeakerTranscript maps speaker labels to their concatenated spoken text,
// preserving first-appearance order.
type SpeakerTranscript struct {
	order []string
	texts map[string][]string
}

// Speakers returns the speaker labels in first-appearance order.
func (st *SpeakerTranscript) Speakers() []string {
	return st.order
}

// Text returns the space-joined text spoken by the given speaker.
func (st *SpeakerTranscript) Text(speaker string) string {
	return strings.Join(st.texts[speaker], " ")
}

// Len returns the number of distinct speakers.
func (st *SpeakerTranscript) Len() int {
	return len(st.order)
}

func (st *SpeakerTranscript) add(speaker, text string) {
	if _, seen := st.texts[speaker]; !seen {
		st.order = append(st.order, speaker)
	}
	st.texts[speaker] = append(st.texts[speaker], text)
}

// ExtractBySpeaker groups the spoken text of every parseable wire-format
// line in raw by speaker. Unparseable lines are dropped silently.
func ExtractBySpeaker(raw string) *SpeakerTranscript {
	st := &SpeakerTranscript{texts: make(map[string][]string)}
	for _, line := range strings.Split(raw, "\n") {
		parsed, ok := ParseRaw(line)
		if !ok {
			continue
		}
		text := strings.TrimSpace(parsed.Text)
		if text == "" {
			continue
		}
		st.add(parsed.Speaker, text)
	}
	return st
}
