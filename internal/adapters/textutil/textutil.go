// Package textutil holds the text normalizations applied to exported fields.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip     = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s to a lowercase, hyphen-separated ASCII slug.
// Accents are decomposed and dropped; punctuation other than '-' and '_' is removed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	ascii = slugStrip.ReplaceAllString(ascii, "")
	ascii = strings.ToLower(strings.TrimSpace(ascii))
	return slugSeparator.ReplaceAllString(ascii, "-")
}

// ToASCII transliterates s to its closest ASCII representation.
func ToASCII(s string) string {
	return unidecode.Unidecode(s)
}

// GuidebookText prepares free text for a Guidebook import: ASCII only,
// carriage returns removed, newlines turned into <br>.
func GuidebookText(s string) string {
	s = ToASCII(s)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// MediaURL joins a stored file path onto the media URL prefix.
// Empty paths stay empty and absolute http(s) URLs are returned unchanged.
func MediaURL(prefix, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if prefix == "" {
		return path
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}
