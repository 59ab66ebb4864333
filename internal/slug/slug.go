// Package slug derives URL-safe identifiers from article titles.
package slug

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Slugify converts a title into a lowercase, ASCII-only, hyphen-separated
// slug candidate. It is deterministic and makes no uniqueness guarantee;
// callers must check the result against existing slugs. Titles that contain
// no usable characters produce an empty string, which callers must reject.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = whitespaceToHyphen(s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "-and-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	s = b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func whitespaceToHyphen(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			if !inRun {
				b.WriteByte('-')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
