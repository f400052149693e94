// Package attrs reads slog-style key/value lists ([k1, v1, k2, v2, ...]).
package attrs

// Lookup returns the value paired with the first occurrence of key.
// Non-string keys are skipped; a trailing key without a value is ignored.
func Lookup(kv []any, key string) (any, bool) {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok && k == key {
			return kv[i+1], true
		}
	}
	return nil, false
}

// ExtractString returns key's value when it is a string, "" otherwise.
func ExtractString(kv []any, key string) string {
	v, _ := Lookup(kv, key)
	s, _ := v.(string)
	return s
}
