package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugify derives a URL-safe slug from a title: lower-cased, diacritics
// stripped, runs of non-alphanumerics collapsed into single hyphens.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, title)
	if err != nil {
		ascii = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}

// ValidSlug reports whether s is a well-formed slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
