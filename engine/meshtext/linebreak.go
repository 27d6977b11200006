package meshtext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BreakLines splits text into lines no wider than maxWidth characters.
//
// With wordWrap the text is cut into alternating runs of whitespace and
// non-whitespace, otherwise every character is its own token. Tokens are
// packed greedily: a token whose width, without trailing whitespace, would
// push the current line past maxWidth starts a new line. A token wider than
// maxWidth on an empty line becomes a line of its own. Joining the result
// always gives back text.
func BreakLines(text string, maxWidth int, wordWrap bool) []string {
	var tokens []string
	if wordWrap {
		tokens = splitWords(text)
	} else {
		tokens = splitCharacters(text)
	}

	lines := []string{}
	var currentLine strings.Builder
	currentWidth := 0
	for _, token := range tokens {
		tokenWidth := utf8.RuneCountInString(token)
		tokenWidthTrimmed := utf8.RuneCountInString(strings.TrimRightFunc(token, unicode.IsSpace))
		if currentWidth+tokenWidthTrimmed > maxWidth {
			if currentWidth == 0 {
				// overflow: the token alone is wider than a line
				lines = append(lines, token)
				continue
			}
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		currentLine.WriteString(token)
		currentWidth += tokenWidth
	}
	if currentWidth > 0 {
		lines = append(lines, currentLine.String())
	}
	return lines
}

// splitWords cuts text into maximal runs of whitespace and non-whitespace.
func splitWords(text string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			tokens = append(tokens, text[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func splitCharacters(text string) []string {
	tokens := make([]string, 0, len(text))
	for len(text) > 0 {
		_, size := utf8.DecodeRuneInString(text)
		tokens = append(tokens, text[:size])
		text = text[size:]
	}
	return tokens
}

// TrimmedWidth is the width of line without leading and trailing whitespace.
func TrimmedWidth(line string) int {
	return utf8.RuneCountInString(strings.TrimFunc(line, unicode.IsSpace))
}
