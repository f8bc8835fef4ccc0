package eucatalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SnakeCase converts s to lower snake case. Words are split on
// non-alphanumeric runes and on case transitions, so "UnitedKingdom",
// "United Kingdom" and "united-kingdom" all become "united_kingdom".
func SnakeCase(s string) string {
	w := splitWords(s)
	for i := range w {
		w[i] = strings.ToLower(w[i])
	}
	return strings.Join(w, "_")
}

// TitleCase converts s to space separated title case ("protonMail" becomes
// "Proton Mail").
func TitleCase(s string) string {
	w := splitWords(s)
	if len(w) == 0 {
		return ""
	}
	// A Caser is stateful, so one is created per call.
	caser := cases.Title(language.Und)
	return caser.String(strings.ToLower(strings.Join(w, " ")))
}

// StripBrandPrefix removes a leading brand word (compared case-insensitively)
// from name and capitalizes what remains. Names that consist of the brand
// word alone are returned unchanged.
func StripBrandPrefix(name, brand string) string {
	name = strings.TrimSpace(name)
	first, rest, ok := strings.Cut(name, " ")
	if !ok || !strings.EqualFold(first, brand) {
		return name
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToUpper(r)) + rest[size:]
}

// FirstSentence returns text up to and including the first period, or the
// whole text when it contains none.
func FirstSentence(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i+1]
	}
	return text
}

// LeadingSentences returns the first n non-empty sentences of text on one
// line. Each sentence is trimmed, terminated by a period and separated from
// the next by a single space.
func LeadingSentences(text string, n int) string {
	if n < 1 {
		return ""
	}
	sentences := make([]string, 0, n)
	for _, piece := range strings.Split(text, ".") {
		if len(sentences) == n {
			break
		}
		piece = strings.Join(strings.Fields(piece), " ")
		if piece == "" {
			continue
		}
		sentences = append(sentences, piece+".")
	}
	return strings.Join(sentences, " ")
}

func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
