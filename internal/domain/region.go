package domain

import "strings"

// USStateCodes lists the 50 states plus the District of Columbia.
var USStateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var usStateSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(USStateCodes))
	for _, c := range USStateCodes {
		m[c] = struct{}{}
	}
	return m
}()

// IsUSStateCode reports whether code is one of USStateCodes. The check is
// case-sensitive; callers normalize with NormalizeStateCode first.
func IsUSStateCode(code string) bool {
	_, ok := usStateSet[code]
	return ok
}

// NormalizeStateCode trims and uppercases a two-letter region code.
func NormalizeStateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
