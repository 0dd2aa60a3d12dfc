package parsing

import (
	"fmt"

	"github.com/dhamidi/duplex/cursor"
)

type bounds struct {
	minLength int
	maxLength int
	bounded   bool
}

// PrefixOption configures the length bounds of a [Prefix].
type PrefixOption func(*bounds)

// MinLength sets the minimum number of elements a [Prefix] must consume.
func MinLength(n int) PrefixOption {
	return func(b *bounds) {
		b.minLength = n
	}
}

// MaxLength sets the maximum number of elements a [Prefix] consumes.
func MaxLength(n int) PrefixOption {
	return func(b *bounds) {
		b.maxLength = n
		b.bounded = true
	}
}

// Prefix consumes a run of elements from the front of a cursor.
//
// It takes at most MaxLength elements, stops at the first element that fails the
// predicate, and fails if fewer than MinLength elements were taken:
//
//	digits := parsing.PrefixFrom(1, unicode.IsDigit)
//	in := cursor.Runes("123 abc")
//	v, _ := digits.Parse(in) // "123", leaving " abc"
//
// The zero value consumes all remaining input.
//
// As a printer, Prefix refuses values that its parser could not have produced,
// including values whose successor in the cursor would extend the parsed run.
type Prefix[E any] struct {
	bounds
	predicate func(E) bool
}

// PrefixWhile returns a Prefix that consumes elements satisfying predicate, with no
// length bounds unless options are given.
func PrefixWhile[E any](predicate func(E) bool, opts ...PrefixOption) Prefix[E] {
	p := Prefix[E]{predicate: predicate}
	for _, opt := range opts {
		opt(&p.bounds)
	}
	return p
}

// PrefixRange returns a Prefix that consumes between minLength and maxLength
// elements, inclusive. The predicate may be nil.
//
// A reversed range is accepted; such a Prefix fails on every input.
func PrefixRange[E any](minLength, maxLength int, predicate func(E) bool) Prefix[E] {
	return PrefixWhile(predicate, MinLength(minLength), MaxLength(maxLength))
}

// PrefixN returns a Prefix that consumes exactly n elements.
func PrefixN[E any](n int, predicate func(E) bool) Prefix[E] {
	return PrefixRange(n, n, predicate)
}

// PrefixFrom returns a Prefix that consumes at least minLength elements.
func PrefixFrom[E any](minLength int, predicate func(E) bool) Prefix[E] {
	return PrefixWhile(predicate, MinLength(minLength))
}

// PrefixThrough returns a Prefix that consumes at most maxLength elements.
func PrefixThrough[E any](maxLength int, predicate func(E) bool) Prefix[E] {
	return PrefixWhile(predicate, MaxLength(maxLength))
}

func (p Prefix[E]) MinLength() int {
	return p.minLength
}

// MaxLength returns the maximum length and whether one is set.
func (p Prefix[E]) MaxLength() (int, bool) {
	return p.maxLength, p.bounded
}

// HasPredicate reports whether elements are restricted by a predicate.
func (p Prefix[E]) HasPredicate() bool {
	return p.predicate != nil
}

func (p Prefix[E]) String() string {
	var length string
	switch {
	case p.bounded && p.minLength == p.maxLength:
		length = fmt.Sprint(p.minLength)
	case p.bounded && p.minLength == 0:
		length = fmt.Sprintf("...%d", p.maxLength)
	case p.bounded:
		length = fmt.Sprintf("%d...%d", p.minLength, p.maxLength)
	default:
		length = fmt.Sprintf("%d...", p.minLength)
	}
	if p.HasPredicate() {
		return fmt.Sprintf("Prefix(%s, while: predicate)", length)
	}
	return fmt.Sprintf("Prefix(%s)", length)
}

// Parse consumes the longest run allowed by the bounds and predicate.
//
// The run is removed from the cursor before the minimum length is checked, so a
// failed parse still advances past the elements it matched.
func (p Prefix[E]) Parse(in cursor.Sequence[E]) ([]E, error) {
	n := in.Len()
	if p.bounded && p.maxLength < n {
		n = p.maxLength
	}
	window := in.Peek(n)

	count := len(window)
	if p.predicate != nil {
		count = 0
		for count < len(window) && p.predicate(window[count]) {
			count++
		}
	}
	out := window[:count:count]
	in.RemoveFirst(count)

	if count < p.minLength {
		return nil, &ParseError{
			Kind:      ExpectedInput,
			Needed:    p.minLength - count,
			HadAny:    count > 0,
			Predicate: p.predicate != nil,
			Offset:    in.Offset(),
			Near:      near[E](in),
		}
	}
	return out, nil
}

// Print prepends out after checking that parsing the result would yield out again.
func (p Prefix[E]) Print(out []E, in cursor.Prependable[E]) error {
	count := len(out)
	fail := func(kind PrintErrorKind) error {
		maxLength := -1
		if p.bounded {
			maxLength = p.maxLength
		}
		return &PrintError{
			Kind:   kind,
			Min:    p.minLength,
			Max:    maxLength,
			Count:  count,
			Offset: in.Offset(),
			Near:   near[E](in),
		}
	}

	if count < p.minLength {
		return fail(TooShort)
	}
	if p.bounded && count > p.maxLength {
		return fail(TooLong)
	}
	if p.predicate != nil {
		for _, e := range out {
			if !p.predicate(e) {
				return fail(PredicateViolated)
			}
		}
		if next := in.Peek(1); len(next) > 0 && p.predicate(next[0]) {
			return fail(AmbiguousBoundary)
		}
	}
	in.Prepend(out...)
	return nil
}

var _ ParserPrinter[rune, []rune] = Prefix[rune]{}
