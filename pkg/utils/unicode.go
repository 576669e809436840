package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// bounds are clamped into [0, RuneCount(s)]; stop < start yields ""
func RuneSlice(s string, start, stop int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if stop > len(runes) {
		stop = len(runes)
	}
	if stop <= start {
		return ""
	}
	return string(runes[start:stop])
}

// index of the first whitespace rune at or after from, or len(runes)
func NextSpace(runes []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for from < len(runes) && !unicode.IsSpace(runes[from]) {
		from++
	}
	return from
}

func IsASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// lowercases and strips trailing/leading sentence punctuation
func CleanWord(word string) string {
	return strings.ToLower(strings.Trim(word, ".,?!"))
}
