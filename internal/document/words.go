package document

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is a word character: any letter, any number or
// the underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// WordBoundary reports whether byte offset i of s sits between a word and a
// non-word character. The start and end of s count as non-word.
func WordBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = IsWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = IsWordRune(r)
	}
	return before != after
}

// CountWholeWord counts non-overlapping occurrences of word in s that start and
// end on a word boundary, stopping at limit. A non-positive limit counts all.
func CountWholeWord(s, word string, limit int) int {
	if word == "" {
		return 0
	}

	n, pos := 0, 0
	for limit <= 0 || n < limit {
		idx := strings.Index(s[pos:], word)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(word)
		if WordBoundary(s, start) && WordBoundary(s, end) {
			n++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return n
}
