package translation

import "strings"

// normalizeLangCode returns the lowercase primary subtag ("en" from "en-US"),
// or "" when the value is blank or malformed.
func normalizeLangCode(raw string) string {
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return ""
	}
	code = strings.ReplaceAll(code, "_", "-")
	if dash := strings.IndexByte(code, '-'); dash >= 0 {
		code = code[:dash]
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	if len(code) < 2 || len(code) > 3 {
		return ""
	}
	return code
}
