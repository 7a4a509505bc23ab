// Package slug generates the short public identifiers used in shareable
// landing page URLs.
package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 8

	slugifyMaxLen = 50
)

// New returns an 8-character identifier drawn uniformly from [a-z0-9].
// Uniqueness is enforced at insert time, not here.
func New() (string, error) {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// stripMarks removes combining marks after NFD decomposition, so
// "Código" becomes "Codigo".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes arbitrary text into a URL-safe identifier:
// lowercase, diacritics stripped, non-alphanumeric runs collapsed to a
// single "-", trimmed, capped at 50 characters.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastDash := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > slugifyMaxLen {
		out = strings.Trim(out[:slugifyMaxLen], "-")
	}
	return out
}
