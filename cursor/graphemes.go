package cursor

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// SplitGraphemes splits s into extended grapheme clusters.
func SplitGraphemes(s string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

// Graphemes returns a prependable cursor whose elements are the grapheme
// clusters of s.
func Graphemes(s string) *Buffer[string] {
	return New(SplitGraphemes(s))
}

// String renders elements of a byte, rune or grapheme cursor as text.
// Other element types are formatted with %v.
func String[E any](elems []E) string {
	switch v := any(elems).(type) {
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	case []string:
		return strings.Join(v, "")
	}
	var sb strings.Builder
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprint(e))
	}
	return sb.String()
}
