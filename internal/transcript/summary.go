package transcript

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	codeFence          = "```"
	maxPathSeparators  = 5
	listItemLimit      = 2
	ellipsis           = "..."
	fragmentMinLength  = 10
	fragmentMinSpace   = 20
	targetRatioPercent = 90
	settleRatioPercent = 60
)

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*\s][^*\n]*?)\*`)
	inlineCodePattern = regexp.MustCompile("`([^`\n]*)`")
	listItemPattern   = regexp.MustCompile(`\n[ \t]*(?:\d+\.|\*|-)[ \t]+`)
	breakPoints       = []string{". ", ", ", " - ", ": "}
)

// Clean applies the suppression and markup stages and returns single-line text.
// It returns "" when the text should not be spoken at all.
func Clean(text string) string {
	prepared, ok := prepare(text)
	if !ok {
		return ""
	}

	return collapse(prepared)
}

// Summarize reduces text to at most maxLength characters of speakable prose,
// aiming for at least minLength. It returns "" when the text is suppressed.
func Summarize(text string, maxLength, minLength int) string {
	if maxLength <= 0 {
		return ""
	}

	prepared, ok := prepare(text)
	if !ok {
		return ""
	}

	flat := collapse(prepared)
	if flat == "" {
		return ""
	}
	if runeLen(flat) <= maxLength {
		return flat
	}

	if hasListStructure(prepared) {
		if summary := summarizeList(prepared, maxLength); summary != "" && runeLen(summary) <= maxLength {
			return summary
		}
	}

	summary := summarizeSentences(splitSentences(prepared), maxLength, minLength)
	if summary == "" {
		summary = hardTruncate(flat, maxLength)
	}

	return clamp(summary, maxLength)
}

// prepare runs the suppression checks and strips markup. Line breaks survive so
// list and sentence detection can see them.
func prepare(text string) (string, bool) {
	if idx := strings.Index(text, codeFence); idx >= 0 {
		text = text[:idx]
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if looksStructured(trimmed) || pathHeavy(trimmed) {
		return "", false
	}

	return normalizeLines(stripMarkup(trimmed)), true
}

func looksStructured(text string) bool {
	return strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")
}

func pathHeavy(text string) bool {
	return strings.Count(text, "/") > maxPathSeparators || strings.Count(text, `\`) > maxPathSeparators
}

func stripMarkup(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	return inlineCodePattern.ReplaceAllString(text, "$1")
}

func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if collapsed := collapse(line); collapsed != "" {
			kept = append(kept, collapsed)
		}
	}

	return strings.Join(kept, "\n")
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func hasListStructure(text string) bool {
	return listItemPattern.MatchString("\n" + text)
}

func summarizeList(text string, maxLength int) string {
	source := "\n" + text
	loc := listItemPattern.FindStringIndex(source)
	if loc == nil {
		return ""
	}

	intro := collapse(source[:loc[0]])
	items := []string{}
	for _, part := range listItemPattern.Split(source[loc[0]:], -1) {
		item := strings.TrimRight(collapse(part), ".")
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return ""
	}

	summary := intro
	if summary != "" && !strings.HasSuffix(summary, ":") {
		summary += ":"
	}

	included := items
	if len(included) > listItemLimit {
		included = included[:listItemLimit]
	}
	summary = joinSpace(summary, included[0])
	if len(included) > 1 {
		summary += ", " + lowerLead(included[1])
	}

	if remaining := len(items) - len(included); remaining > 0 {
		more := fmt.Sprintf(" and %d more", remaining)
		if runeLen(summary+more) <= maxLength {
			summary += more
		}
	}

	return withTerminal(summary)
}

// splitSentences breaks after . ! or ? when the next thing is a line break, or
// whitespace followed by an upper-case letter.
func splitSentences(text string) []string {
	runes := []rune(text)
	sentences := []string{}
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		j := i + 1
		sawNewline := false
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			if runes[j] == '\n' {
				sawNewline = true
			}
			j++
		}

		boundary := sawNewline || (j > i+1 && j < len(runes) && unicode.IsUpper(runes[j]))
		if !boundary {
			continue
		}

		if sentence := collapse(string(runes[start : i+1])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = j
		i = j - 1
	}

	if start < len(runes) {
		if sentence := collapse(string(runes[start:])); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

func summarizeSentences(sentences []string, maxLength, minLength int) string {
	if len(sentences) == 0 {
		return ""
	}

	target := maxLength * targetRatioPercent / 100
	summary := ""
	used := 0

	for i, sentence := range sentences {
		sentence = withTerminal(sentence)
		candidate := joinSpace(summary, sentence)
		if runeLen(candidate) > target {
			if summary == "" {
				summary = truncateAtBreak(sentence, target, maxLength)
				used = 1
			}
			break
		}

		summary = candidate
		used = i + 1
		if runeLen(summary) >= minLength && runeLen(summary) >= target*settleRatioPercent/100 {
			if i+1 < len(sentences) {
				next := joinSpace(summary, withTerminal(sentences[i+1]))
				if runeLen(next) <= maxLength {
					summary = next
					used = i + 2
				}
			}
			break
		}
	}

	if summary != "" && runeLen(summary) < minLength && used < len(sentences) {
		summary = extendShort(summary, sentences[used], maxLength)
	}

	return summary
}

// truncateAtBreak cuts an over-long sentence at the last natural break inside the
// target window, falling back to a hard cut with an ellipsis.
func truncateAtBreak(sentence string, target, maxLength int) string {
	window := truncateRunes(sentence, target)
	cut := -1
	for _, bp := range breakPoints {
		if pos := strings.LastIndex(window, bp); pos > cut {
			cut = pos
		}
	}
	if cut <= 0 {
		return hardTruncate(sentence, maxLength)
	}

	head := strings.TrimSpace(window[:cut+1])
	head = strings.TrimRight(head, ",:-")
	head = strings.TrimSpace(head)
	if head == "" {
		return hardTruncate(sentence, maxLength)
	}
	if r, _ := utf8.DecodeLastRuneInString(head); !isTerminal(r) {
		head += ellipsis
	}

	return head
}

func extendShort(summary, next string, maxLength int) string {
	remaining := maxLength - runeLen(summary) - 1
	if remaining <= fragmentMinSpace {
		return summary
	}

	full := withTerminal(next)
	if runeLen(full) <= remaining {
		return summary + " " + full
	}

	fragment := strings.TrimSpace(truncateRunes(next, remaining-len(ellipsis)))
	if runeLen(fragment) <= fragmentMinLength {
		return summary
	}

	return summary + " " + fragment + ellipsis
}

func hardTruncate(text string, maxLength int) string {
	if runeLen(text) <= maxLength {
		return text
	}
	if maxLength <= len(ellipsis) {
		return truncateRunes(text, maxLength)
	}

	return strings.TrimSpace(truncateRunes(text, maxLength-len(ellipsis))) + ellipsis
}

func clamp(text string, maxLength int) string {
	return hardTruncate(text, maxLength)
}

func withTerminal(text string) string {
	if text == "" {
		return text
	}
	if r, _ := utf8.DecodeLastRuneInString(text); isTerminal(r) {
		return text
	}

	return text + "."
}

// lowerLead lower-cases the first letter unless the first word looks like an acronym.
func lowerLead(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return text
	}

	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func joinSpace(head, tail string) string {
	if head == "" {
		return tail
	}

	return head + " " + tail
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}

func truncateRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
