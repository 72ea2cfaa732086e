package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Result
	}{
		{"us zip", "94102", Result{TypeZipCode, "94102"}},
		{"zip plus four", "94102-1234", Result{TypeZipCode, "94102-1234"}},
		{"generic numeric postal", "2000", Result{TypeZipCode, "2000"}},
		{"six digit postal", "110001", Result{TypeZipCode, "110001"}},
		{"canadian postal", "K1A 0B1", Result{TypeZipCode, "K1A 0B1"}},
		{"uk postcode", "SW1A 1AA", Result{TypeZipCode, "SW1A 1AA"}},
		{"uk postcode lower", "ec1a 1bb", Result{TypeZipCode, "ec1a 1bb"}},
		{"state name", "California", Result{TypeRegion, "California"}},
		{"state name wins over city", "New York", Result{TypeRegion, "New York"}},
		{"state abbreviation", "tx", Result{TypeRegion, "tx"}},
		{"country name any case", "FRANCE", Result{TypeRegion, "FRANCE"}},
		{"city", "San Francisco", Result{TypeCity, "San Francisco"}},
		{"city with diacritics", "São Paulo", Result{TypeCity, "São Paulo"}},
		{"city with country", "Paris, France", Result{TypeCity, "Paris, France"}},
		{"trimmed", "  Boston  ", Result{TypeCity, "Boston"}},
		{"three digits is a city", "123", Result{TypeCity, "123"}},
		{"empty", "", Result{TypeUnknown, ""}},
		{"whitespace", "   \t ", Result{TypeUnknown, ""}},
		{"nil", nil, Result{TypeUnknown, ""}},
		{"number", 94102, Result{TypeUnknown, "94102"}},
		{"bool", true, Result{TypeUnknown, "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("Classify(%#v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	inputs := []string{
		"", " ", "a", "ab", "12345", "New Mexico", "new mexico", "Zürich", "東京",
		"<b>x</b>", "90210-", "A1A1A1", "London, UK", strings.Repeat("x", 500),
	}
	for _, in := range inputs {
		got := Classify(in)
		switch got.Type {
		case TypeZipCode, TypeCity, TypeRegion:
			if got.Value == "" || got.Value != strings.TrimSpace(got.Value) {
				t.Errorf("Classify(%q).Value = %q, want non-empty trimmed", in, got.Value)
			}
		case TypeUnknown:
		default:
			t.Errorf("Classify(%q).Type = %q, not a known type", in, got.Type)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{"  New   York  ", "New York"},
		{"<script>alert(1)</script>Boston", "alert(1)Boston"},
		{"<b>Paris</b>, France", "Paris, France"},
		{`O'Hare "airport"; \x`, "OHare airport x"},
		{"tab\tand\nnewline", "tab and newline"},
		{"`rm`", "rm"},
		{"<>", ""},
		{"A<>", "A"},
		{nil, ""},
		{12345, "12345"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
		{strings.Repeat("a", 99) + " b", strings.Repeat("a", 99)},
	}

	for _, tt := range tests {
		got := Sanitize(tt.input)
		if got != tt.want {
			t.Errorf("Sanitize(%#v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{
		"", "  New   York  ", "<a<b>>c", "<<>>", "a  b", "x;y\\z", strings.Repeat("é ", 80),
		"\xff\xfe bad utf8", "<" + strings.Repeat("y", 120) + ">z",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Sanitize(s)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent: %q -> %q -> %q", s, once, twice)
		}
		if n := utf8.RuneCountInString(once); n > MaxQueryLength {
			t.Errorf("Sanitize(%q) has %d characters, want <= %d", s, n, MaxQueryLength)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		valid   bool
		wantErr string
	}{
		{"city", "Boston", true, ""},
		{"two characters", "NY", true, ""},
		{"empty", "", false, MsgRequired},
		{"whitespace", "    ", false, MsgRequired},
		{"markup only", "<>", false, MsgRequired},
		{"tag only", "<b></b>", false, MsgRequired},
		{"single character", "A", false, MsgTooShort},
		{"single after sanitizing", "A<>", false, MsgTooShort},
		{"nil", nil, false, MsgRequired},
		{"number", 42, false, MsgNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			if got.Valid != tt.valid || got.Error != tt.wantErr {
				t.Errorf("Validate(%#v) = %+v, want valid=%v error=%q", tt.input, got, tt.valid, tt.wantErr)
			}
		})
	}
}
