package helper

import "unicode"

// Underscore converts a StructField name like "VenueName" to its snake_case
// form "venue_name" for validation error keys. Acronym runs stay together,
// so "LinkURL" becomes "link_url".
func Underscore(s string) string {
	runes := []rune(s)
	var out []rune
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				out = append(out, '_')
			}
			out = append(out, unicode.ToLower(r))
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
