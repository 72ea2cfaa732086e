package search

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the longest query, in characters, Sanitize returns.
const MaxQueryLength = 100

const (
	MsgRequired  = "Please enter a location"
	MsgTooShort  = "Location must be at least 2 characters"
	MsgNotString = "Location must be a string"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var strippedChars = strings.NewReplacer(
	"<", "", ">", "", "'", "", `"`, "", "`", "", ";", "", `\`, "",
)

// Sanitize strips markup and unsafe characters from input, collapses
// whitespace and truncates the result to MaxQueryLength characters.
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(input any) string {
	var s string
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}

	s = tagPattern.ReplaceAllString(s, "")
	s = strippedChars.Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) > MaxQueryLength {
		s = strings.TrimSpace(string([]rune(s)[:MaxQueryLength]))
	}
	return s
}

// ValidationResult reports whether a search input is acceptable. Error holds
// a user-facing message when Valid is false.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks the sanitized form of input, so markup-only input is
// rejected as empty and "A<>" is rejected as too short.
func Validate(input any) ValidationResult {
	if input == nil {
		return ValidationResult{Error: MsgRequired}
	}
	if _, ok := input.(string); !ok {
		return ValidationResult{Error: MsgNotString}
	}

	clean := Sanitize(input)
	switch n := utf8.RuneCountInString(clean); {
	case n == 0:
		return ValidationResult{Error: MsgRequired}
	case n == 1:
		return ValidationResult{Error: MsgTooShort}
	}
	return ValidationResult{Valid: true}
}
