package sanitizer

import (
	"strings"
	"time"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

func NormalizeState(state string) string {
	return strings.ToUpper(TrimAndNormalize(state))
}

func NormalizeZipCode(zip string) string {
	return strings.ToUpper(TrimAndNormalize(zip))
}

// NormalizeTimeZone returns the canonical name of a loadable IANA zone, or ""
// when the zone is unknown. "UTC" and "" both normalize to "".
func NormalizeTimeZone(tz string) string {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "UTC") {
		return ""
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return ""
	}
	return loc.String()
}
