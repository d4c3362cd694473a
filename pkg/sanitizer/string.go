package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s, collapses runs of whitespace into one space and
// drops other control characters. Guest fields end up in mail headers, so
// nothing that could break a line survives.
func TrimAndNormalize(s string) string {
	var result strings.Builder
	pendingSpace := false

	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r):
		default:
			if pendingSpace && result.Len() > 0 {
				result.WriteByte(' ')
			}
			pendingSpace = false
			result.WriteRune(r)
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(TrimAndNormalize(email))
}

// NormalizeRoomID upper-cases a room id so "r001" finds R001.
func NormalizeRoomID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
