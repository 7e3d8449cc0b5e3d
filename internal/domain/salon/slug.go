package salon

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ===============================
// Slug assignment
// ===============================

const slugRandChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// stripMarks decomposes accented letters and removes the combining marks,
// so "Salón" becomes "Salon" before the ASCII filter runs.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify folds diacritics to their ASCII base letters, lowercases the
// input, collapses every run of the remaining non-alphanumeric characters
// into a single hyphen and trims leading/trailing hyphens.
func Slugify(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	lastHyphen := true // swallow leading separators

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// SlugBase builds the slug source for a new salon: "{name}-{firstLocationSegment}",
// where the location segment is the text before the first comma. An empty
// result falls back to "salon-" plus six random characters so the slug is
// never empty.
func SlugBase(name, location string) string {
	source := name

	if location != "" {
		segment := location
		if i := strings.Index(location, ","); i >= 0 {
			segment = location[:i]
		}
		segment = strings.TrimSpace(segment)
		if segment != "" {
			source = fmt.Sprintf("%s-%s", name, segment)
		}
	}

	base := Slugify(source)
	if base == "" {
		base = randomSlug()
	}
	return base
}

// SuffixedSlug appends the uniqueness counter: "{base}-{n}".
func SuffixedSlug(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

func randomSlug() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = slugRandChars[rand.Intn(len(slugRandChars))]
	}
	return "salon-" + string(b)
}
