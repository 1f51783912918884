// Package normalizer maps raw ingest/query words to canonical index terms:
// strip non-alphanumeric edges, then case-fold to lowercase ASCII.
package normalizer

// isAlnum reports whether b is an ASCII alphanumeric byte, matching the C
// locale's isalnum: [0-9A-Za-z]. Non-ASCII bytes are never alphanumeric.
func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// RemovePunctuation returns the longest run of alphanumeric characters in s
// starting at the first alphanumeric byte: leading non-alphanumerics are
// skipped, and the run stops at the first non-alphanumeric byte after that.
// Trailing punctuation attached to a later word is never included, since the
// run ends at the first break. If s has no alphanumeric bytes, it returns "".
func RemovePunctuation(s string) string {
	start := 0
	for start < len(s) && !isAlnum(s[start]) {
		start++
	}
	if start == len(s) {
		return ""
	}
	end := start
	for end < len(s) && isAlnum(s[end]) {
		end++
	}
	return s[start:end]
}

// Normalize returns RemovePunctuation(s) with every byte case-folded to
// lowercase. The result contains only [0-9a-z], or is empty.
func Normalize(s string) string {
	run := RemovePunctuation(s)
	if run == "" {
		return ""
	}
	out := make([]byte, len(run))
	for i := 0; i < len(run); i++ {
		b := run[i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		out[i] = b
	}
	return string(out)
}
