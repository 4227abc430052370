package publish

import "strings"

// Slugify normalizes user input into a URL-safe subdomain label: lowercase,
// every run of characters outside [a-z0-9] collapsed to a single hyphen,
// leading/trailing hyphens stripped. Returns "" when nothing usable remains.
//
// Idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(input string) string {
	var b strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
