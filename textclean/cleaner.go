// Package textclean normalizes noisy spoken-language transcripts into
// punctuated, capitalized written prose.
//
// Cleaning is a fixed sequence of passes whose order matters: whitespace
// normalization, connector punctuation, filler removal, repetition
// collapsing, punctuation normalization, then sentence segmentation with
// terminal punctuation and capitalization. The whole pipeline is
// idempotent: cleaning already-clean text returns it unchanged.
package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

// maxRepetitionPhrase is the longest phrase length (in words) considered
// by the repetition collapser.
const maxRepetitionPhrase = 4

// punctCutset holds the punctuation marks that may attach to a word token.
const punctCutset = ",.!?;:"

var (
	spaceBeforePunct = regexp.MustCompile(`\s+([,.!?;:])`)
	// Inserting a space between two marks would undo spaceBeforePunct on
	// the next run, so adjacent marks are left untouched.
	missingSpaceAfter = regexp.MustCompile(`([,.!?;:])([^\s,.!?;:])`)
	multiplePeriods   = regexp.MustCompile(`\.{2,}`)
	sentenceBoundary  = regexp.MustCompile(`([.!?])\s+`)
)

// Cleaner rewrites raw transcript text into normalized prose. The zero
// value is not usable; construct with NewCleaner.
type Cleaner struct {
	fillers        map[string]struct{}
	connectors     [][]string // token sequences, longest first
	leads          []string
	spokenRewrites [][2]string
}

// NewCleaner creates a Cleaner with the canonical French lexicons.
func NewCleaner() *Cleaner {
	c := &Cleaner{
		fillers:        make(map[string]struct{}, len(DefaultFillers)),
		leads:          DefaultInterrogativeLeads,
		spokenRewrites: DefaultSpokenRewrites,
	}
	for _, f := range DefaultFillers {
		c.fillers[strings.ToLower(f)] = struct{}{}
	}
	for _, conn := range DefaultConnectors {
		c.connectors = append(c.connectors, strings.Fields(conn))
	}
	// Longest entries first so "par conséquent" wins over any
	// single-word prefix of it.
	for i := 0; i < len(c.connectors); i++ {
		for j := i + 1; j < len(c.connectors); j++ {
			if len(c.connectors[j]) > len(c.connectors[i]) {
				c.connectors[i], c.connectors[j] = c.connectors[j], c.connectors[i]
			}
		}
	}
	return c
}

// Clean runs the full normalization pipeline over text.
func (c *Cleaner) Clean(text string) string {
	tokens := strings.Fields(text) // pass 1: line breaks, whitespace runs, trim
	tokens = c.punctuateConnectors(tokens)
	tokens = c.removeFillers(tokens)
	tokens = collapseRepetitions(tokens)

	normalized := normalizePunctuation(strings.Join(tokens, " "))

	sentences := splitSentences(normalized)
	finished := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		finished = append(finished, c.finishSentence(s))
	}
	return strings.Join(finished, " ")
}

// CleanAdvanced is Clean followed by spoken-to-written rewrites
// ("parce que" becomes "car", and so on).
func (c *Cleaner) CleanAdvanced(text string) string {
	tokens := strings.Fields(c.Clean(text))
	for _, rule := range c.spokenRewrites {
		tokens = rewriteTokens(tokens, strings.Fields(rule[0]), rule[1])
	}
	return strings.Join(tokens, " ")
}

// punctuateConnectors appends a comma to each connector occurrence that is
// followed by more text and not already punctuated.
func (c *Cleaner) punctuateConnectors(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		matched := 0
		for _, conn := range c.connectors {
			if matchTokens(tokens, i, conn) {
				matched = len(conn)
				break
			}
		}
		if matched == 0 || i+matched >= len(tokens) {
			out = append(out, tokens[i])
			i++
			continue
		}
		last := tokens[i+matched-1]
		if trailingPunct(last) == "" {
			last += ","
		}
		out = append(out, tokens[i:i+matched-1]...)
		out = append(out, last)
		i += matched
	}
	return out
}

// removeFillers drops filler tokens. The match ignores punctuation attached
// to the token, and the whole token goes, punctuation included.
func (c *Cleaner) removeFillers(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		core := strings.Trim(strings.ToLower(tok), punctCutset)
		if _, isFiller := c.fillers[core]; isFiller {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// collapseRepetitions removes immediate repetitions of 1-4 word phrases,
// case-insensitively, keeping the first occurrence. Longer phrases are
// matched first; the position is re-checked after each removal so triple
// and longer repetitions collapse fully.
func collapseRepetitions(tokens []string) []string {
	out := append([]string(nil), tokens...)
	for i := 0; i < len(out); {
		collapsed := false
		for n := maxRepetitionPhrase; n >= 1; n-- {
			if i+2*n > len(out) {
				continue
			}
			if phrasesEqual(out[i:i+n], out[i+n:i+2*n]) {
				out = append(out[:i+n], out[i+2*n:]...)
				collapsed = true
				break
			}
		}
		if !collapsed {
			i++
		}
	}
	return out
}

// phrasesEqual reports whether two equal-length token windows are the same
// phrase, ignoring case. Tokens carrying punctuation never match, mirroring
// the word-only repetition rule.
func phrasesEqual(a, b []string) bool {
	for i := range a {
		if !isWordToken(a[i]) || !isWordToken(b[i]) {
			return false
		}
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func isWordToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// normalizePunctuation strips whitespace before punctuation marks, ensures
// one space after each mark, and collapses period runs.
func normalizePunctuation(text string) string {
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = missingSpaceAfter.ReplaceAllString(text, "$1 $2")
	text = multiplePeriods.ReplaceAllString(text, ".")
	return text
}

// splitSentences splits on whitespace that follows a sentence-ending mark.
func splitSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1\n")
	return strings.Split(marked, "\n")
}

// finishSentence appends terminal punctuation to an unterminated sentence
// ("?" when it opens with an interrogative lead, "." otherwise) and
// capitalizes the first rune.
func (c *Cleaner) finishSentence(s string) string {
	runes := []rune(s)
	last := runes[len(runes)-1]
	if last != '.' && last != '!' && last != '?' {
		if c.isInterrogative(s) {
			s += "?"
		} else {
			s += "."
		}
		runes = []rune(s)
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// isInterrogative reports whether the sentence opens with an interrogative
// lead word or phrase.
func (c *Cleaner) isInterrogative(s string) bool {
	low := strings.ToLower(s)
	for _, lead := range c.leads {
		if !strings.HasPrefix(low, lead) {
			continue
		}
		if len(low) == len(lead) {
			return true
		}
		next, _ := firstRune(low[len(lead):])
		if !unicode.IsLetter(next) {
			return true
		}
	}
	return false
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// matchTokens reports whether the token window starting at i equals the
// phrase, ignoring case. The first token may carry leading punctuation and
// the last trailing punctuation; interior tokens must match exactly.
func matchTokens(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, want := range phrase {
		got := tokens[i+j]
		if j == 0 {
			got = strings.TrimLeft(got, punctCutset)
		}
		if j == len(phrase)-1 {
			got = strings.TrimRight(got, punctCutset)
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

// rewriteTokens replaces every occurrence of the phrase with the
// replacement, preserving trailing punctuation of the phrase's last token.
func rewriteTokens(tokens []string, phrase []string, replacement string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if matchPhraseWithTail(tokens, i, phrase) {
			tail := trailingPunct(tokens[i+len(phrase)-1])
			out = append(out, replacement+tail)
			i += len(phrase)
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// matchPhraseWithTail is matchTokens, but the phrase's last token may carry
// trailing punctuation.
func matchPhraseWithTail(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, want := range phrase {
		got := tokens[i+j]
		if j == len(phrase)-1 {
			got = strings.TrimRight(got, punctCutset)
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

func trailingPunct(tok string) string {
	trimmed := strings.TrimRight(tok, punctCutset)
	return tok[len(trimmed):]
}
