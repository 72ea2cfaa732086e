// Package search turns free-text location input into a provider query.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

// QueryType tags how a search string was interpreted.
type QueryType string

const (
	TypeZipCode QueryType = "zip_code"
	TypeCity    QueryType = "city"
	TypeRegion  QueryType = "region"
	TypeUnknown QueryType = "unknown"
)

// Result is the outcome of Classify. Value is the trimmed input.
type Result struct {
	Type  QueryType `json:"type"`
	Value string    `json:"value"`
}

var postalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{5}(-\d{4})?$`),                           // US ZIP, ZIP+4
	regexp.MustCompile(`^\d{4,6}$`),                                   // generic numeric
	regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] ?\d[A-Za-z]\d$`),          // Canada
	regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]? ?\d[A-Za-z]{2}$`), // UK
}

// Classify maps input to exactly one QueryType. Only string input is
// classified; anything else is TypeUnknown with its printed value.
func Classify(input any) Result {
	if input == nil {
		return Result{Type: TypeUnknown}
	}
	s, ok := input.(string)
	if !ok {
		return Result{Type: TypeUnknown, Value: fmt.Sprint(input)}
	}

	value := strings.TrimSpace(s)
	if value == "" {
		return Result{Type: TypeUnknown}
	}

	if IsPostalCode(value) {
		return Result{Type: TypeZipCode, Value: value}
	}
	if IsRegion(value) {
		return Result{Type: TypeRegion, Value: value}
	}
	return Result{Type: TypeCity, Value: value}
}

// IsPostalCode reports whether s looks like a US, Canadian, UK or generic
// numeric postal code.
func IsPostalCode(s string) bool {
	for _, re := range postalPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
