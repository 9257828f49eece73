package utils

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// SanitizeTitle maps a movie title to a filesystem-safe directory name.
// Accented characters are transliterated to ASCII first so "Amélie" keeps
// its letters; everything outside [a-zA-Z0-9] becomes an underscore.
func SanitizeTitle(title string) string {
	ascii := unidecode.Unidecode(title)
	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
