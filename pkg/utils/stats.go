package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`\S+`)
var codeBlockPattern = regexp.MustCompile("```[\\s\\S]*?```")

// Stats summarizes a document for the status bar.
type Stats struct {
	Words  int
	Chars  int
	Lines  int
	Tokens int
}

// Measure computes document statistics.
func Measure(text string) Stats {
	if text == "" {
		return Stats{Lines: 1}
	}
	return Stats{
		Words:  len(wordPattern.FindAllString(text, -1)),
		Chars:  utf8.RuneCountInString(text),
		Lines:  strings.Count(text, "\n") + 1,
		Tokens: EstimateTokens(text),
	}
}

// EstimateTokens provides a lightweight estimation of token count,
// averaging a character-based and a word-based estimate. Code blocks
// tend to tokenize denser than prose and get a correction.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	text = strings.TrimSpace(text)

	charEstimate := len(text) / 4
	words := wordPattern.FindAllString(text, -1)
	wordEstimate := int(float64(len(words)) * 1.3)

	estimate := (charEstimate + wordEstimate) / 2

	for _, block := range codeBlockPattern.FindAllString(text, -1) {
		// Code runs ~3 chars per token instead of 4.
		estimate += (len(block) / 3) - (len(block) / 4)
	}

	if estimate < 1 {
		estimate = 1
	}

	return estimate
}

// FormatStats renders statistics for the status bar.
func FormatStats(s Stats) string {
	return fmt.Sprintf("%d words · %d chars · ~%s tokens", s.Words, s.Chars, formatCount(s.Tokens))
}

func formatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/1000)
}
