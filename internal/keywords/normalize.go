// Package keywords turns raw comma separated operand text into keyword lists.
package keywords

import "strings"

// Separator splits keywords inside a command operand.
const Separator = ","

// Key returns the comparison key for a keyword. Membership and dedup are always
// decided on this key; the original casing is what gets stored and displayed.
func Key(keyword string) string {
	return strings.ToLower(keyword)
}

// Normalize splits text on commas, trims every piece, drops empty pieces and removes
// case-insensitive duplicates. The first occurrence wins and keeps its casing and position.
func Normalize(text string) []string {
	parts := strings.Split(text, Separator)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		kw := strings.TrimSpace(part)
		if kw == "" {
			continue
		}
		key := Key(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// KeySet returns the comparison keys of keywords as a set.
func KeySet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[Key(kw)] = struct{}{}
	}
	return set
}

// Join renders keywords the way replies show them, or empty when there are none.
func Join(keywords []string) string {
	return strings.Join(keywords, ", ")
}
