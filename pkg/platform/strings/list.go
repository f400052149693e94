// Package strings parses the comma-separated lists used in configuration.
package strings

import "strings"

// SplitList splits v on commas and returns the trimmed, non-empty,
// first-seen entries in order. An empty v yields nil.
func SplitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(v, ","))
}

// DedupeAndTrim trims every value and drops empties and repeats, keeping the
// first occurrence. Matching is case-sensitive.
func DedupeAndTrim(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
