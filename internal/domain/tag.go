package domain

import "strings"

// Tag is a canonical interest label shared across profiles.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
}

// Slugify normalizes a free-text tag into its canonical slug: lowercase,
// non-alphanumeric runs collapsed to a single dash, trimmed. Returns "" for
// labels with no usable characters.
func Slugify(label string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
