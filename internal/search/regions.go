package search

import (
	"strings"

	"golang.org/x/text/cases"
)

var usStates = []string{
	"Alabama", "AL", "Alaska", "AK", "Arizona", "AZ", "Arkansas", "AR",
	"California", "CA", "Colorado", "CO", "Connecticut", "CT", "Delaware", "DE",
	"Florida", "FL", "Georgia", "GA", "Hawaii", "HI", "Idaho", "ID",
	"Illinois", "IL", "Indiana", "IN", "Iowa", "IA", "Kansas", "KS",
	"Kentucky", "KY", "Louisiana", "LA", "Maine", "ME", "Maryland", "MD",
	"Massachusetts", "MA", "Michigan", "MI", "Minnesota", "MN", "Mississippi", "MS",
	"Missouri", "MO", "Montana", "MT", "Nebraska", "NE", "Nevada", "NV",
	"New Hampshire", "NH", "New Jersey", "NJ", "New Mexico", "NM", "New York", "NY",
	"North Carolina", "NC", "North Dakota", "ND", "Ohio", "OH", "Oklahoma", "OK",
	"Oregon", "OR", "Pennsylvania", "PA", "Rhode Island", "RI", "South Carolina", "SC",
	"South Dakota", "SD", "Tennessee", "TN", "Texas", "TX", "Utah", "UT",
	"Vermont", "VT", "Virginia", "VA", "Washington", "WA", "West Virginia", "WV",
	"Wisconsin", "WI", "Wyoming", "WY", "District of Columbia", "DC",
}

var countries = []string{
	"United States", "USA", "US", "United Kingdom", "UK", "GB", "Great Britain",
	"Canada", "Mexico", "MX", "Brazil", "BR", "Argentina", "AR", "Chile",
	"Colombia", "Peru", "France", "FR", "Germany", "DE", "Spain", "ES",
	"Italy", "IT", "Portugal", "PT", "Netherlands", "NL", "Belgium", "BE",
	"Switzerland", "CH", "Austria", "AT", "Ireland", "IE", "Sweden", "SE",
	"Norway", "NO", "Denmark", "DK", "Finland", "FI", "Poland", "PL",
	"Greece", "GR", "Turkey", "TR", "Russia", "RU", "Ukraine", "UA",
	"China", "CN", "Japan", "JP", "South Korea", "KR", "India", "IN",
	"Pakistan", "PK", "Indonesia", "ID", "Thailand", "TH", "Vietnam", "VN",
	"Philippines", "PH", "Malaysia", "MY", "Singapore", "SG", "Australia", "AU",
	"New Zealand", "NZ", "South Africa", "ZA", "Egypt", "EG", "Nigeria", "NG",
	"Kenya", "KE", "Morocco", "MA", "Israel", "IL", "Saudi Arabia", "SA",
	"United Arab Emirates", "UAE", "AE", "Iran", "IR", "Iraq", "IQ",
}

var regionIndex = buildRegionIndex(usStates, countries)

func buildRegionIndex(lists ...[]string) map[string]struct{} {
	fold := cases.Fold()
	idx := make(map[string]struct{})
	for _, list := range lists {
		for _, name := range list {
			idx[fold.String(name)] = struct{}{}
		}
	}
	return idx
}

// IsRegion reports whether s is, ignoring case, exactly one of the known US
// state or country names or abbreviations.
func IsRegion(s string) bool {
	// Casers are stateful, so each call gets its own.
	_, ok := regionIndex[cases.Fold().String(strings.TrimSpace(s))]
	return ok
}
