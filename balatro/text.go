package balatro

import (
	"fmt"
	"strings"
)

// normalize folds case and drops separators so "Two Pair", "two_pair" and
// "TwoPair" all resolve to the same lookup key.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// nameIndex builds a normalized lookup table from a names slice indexed by
// enum value. Empty names are skipped; aliases are merged in afterwards.
func nameIndex[T ~int](names []string, aliases map[string]T) map[string]T {
	idx := make(map[string]T, len(names)+len(aliases))
	for i, n := range names {
		if n == "" {
			continue
		}
		idx[normalize(n)] = T(i)
	}
	for a, v := range aliases {
		idx[normalize(a)] = v
	}
	return idx
}

func lookup[T ~int](idx map[string]T, what string, text []byte) (T, error) {
	v, ok := idx[normalize(string(text))]
	if !ok {
		return 0, fmt.Errorf("balatro: unknown %s %q", what, string(text))
	}
	return v, nil
}

func nameOf[T ~int](names []string, v T) string {
	if int(v) < 0 || int(v) >= len(names) || names[v] == "" {
		return fmt.Sprintf("%d", int(v))
	}
	return names[v]
}

func marshalName[T ~int](names []string, what string, v T) ([]byte, error) {
	if int(v) < 0 || int(v) >= len(names) || names[v] == "" {
		return nil, fmt.Errorf("balatro: invalid %s %d", what, int(v))
	}
	return []byte(names[v]), nil
}
