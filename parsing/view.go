package parsing

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/dhamidi/duplex/cursor"
)

// Codec transcodes between an outer cursor's elements and runes.
//
// ToScalars decodes as many leading elements as are valid and returns the runes
// together with the number of elements they cover. Decoding stops at the first
// invalid element; nothing is ever substituted. FromScalars must re-encode any
// suffix of decoded runes into exactly the elements they were decoded from.
type Codec[E any] struct {
	ToScalars   func([]E) ([]rune, int)
	FromScalars func([]rune) []E
}

// BytesCodec transcodes UTF-8 bytes.
var BytesCodec = Codec[byte]{
	ToScalars: func(b []byte) ([]rune, int) {
		runes := make([]rune, 0, len(b))
		i := 0
		for i < len(b) {
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			runes = append(runes, r)
			i += size
		}
		return runes, i
	},
	FromScalars: func(runes []rune) []byte {
		return []byte(string(runes))
	},
}

// GraphemesCodec transcodes grapheme clusters as produced by [cursor.Graphemes].
var GraphemesCodec = Codec[string]{
	ToScalars: func(clusters []string) ([]rune, int) {
		var runes []rune
		for i, c := range clusters {
			if !utf8.ValidString(c) {
				return runes, i
			}
			runes = append(runes, []rune(c)...)
		}
		return runes, len(clusters)
	},
	FromScalars: func(runes []rune) []string {
		return cursor.SplitGraphemes(string(runes))
	},
}

// RunesCodec passes valid runes through unchanged.
var RunesCodec = Codec[rune]{
	ToScalars: func(runes []rune) ([]rune, int) {
		for i, r := range runes {
			if !utf8.ValidRune(r) {
				return runes[:i:i], i
			}
		}
		return runes, len(runes)
	},
	FromScalars: func(runes []rune) []rune {
		return runes
	},
}

// ScalarView runs a rune-level combinator over a cursor of another element type.
//
// The remaining outer input is decoded into a rune cursor, the inner combinator runs
// against it, and the outer cursor is moved by exactly the elements that correspond to
// the runes consumed or printed. If that position falls inside an outer element,
// for example between a letter and its combining mark in a grapheme cluster, the
// outer cursor is left unchanged and the operation fails.
type ScalarView[E comparable, O any] struct {
	inner Parser[rune, O]
	codec Codec[E]
}

// FromScalars adapts inner to cursors whose elements are transcoded by codec.
// The view is a printer when inner is a [Printer].
func FromScalars[E comparable, O any](inner Parser[rune, O], codec Codec[E]) ScalarView[E, O] {
	return ScalarView[E, O]{inner: inner, codec: codec}
}

// FromBytes adapts inner to UTF-8 byte cursors, including the bytes of Go strings.
func FromBytes[O any](inner Parser[rune, O]) ScalarView[byte, O] {
	return FromScalars(inner, BytesCodec)
}

// FromGraphemes adapts inner to grapheme cluster cursors.
func FromGraphemes[O any](inner Parser[rune, O]) ScalarView[string, O] {
	return FromScalars(inner, GraphemesCodec)
}

// FromRunes adapts inner to rune cursors, stopping the view at invalid runes.
func FromRunes[O any](inner Parser[rune, O]) ScalarView[rune, O] {
	return FromScalars(inner, RunesCodec)
}

// Inner returns the adapted combinator.
func (v ScalarView[E, O]) Inner() Parser[rune, O] {
	return v.inner
}

func (v ScalarView[E, O]) Parse(in cursor.Sequence[E]) (out O, err error) {
	outer := in.Peek(in.Len())
	scalars, covered := v.codec.ToScalars(outer)
	view := cursor.New(scalars)

	defer func() {
		encoded := v.codec.FromScalars(view.Remaining())
		consumed := covered - len(encoded)
		if consumed < 0 || !slices.Equal(encoded, outer[consumed:covered]) {
			if err == nil {
				var zero O
				out, err = zero, &ParseError{Kind: Misaligned, Offset: in.Offset(), Near: near[E](in)}
			}
			return
		}
		in.RemoveFirst(consumed)
	}()

	return v.inner.Parse(view)
}

func (v ScalarView[E, O]) Print(out O, in cursor.Prependable[E]) error {
	printer, ok := v.inner.(Printer[rune, O])
	if !ok {
		return &PrintError{
			Kind:    Failed,
			Summary: fmt.Sprintf("%T cannot print", v.inner),
			Offset:  in.Offset(),
			Near:    near[E](in),
		}
	}

	outer := in.Peek(in.Len())
	scalars, covered := v.codec.ToScalars(outer)
	view := cursor.New(scalars)
	if err := printer.Print(out, view); err != nil {
		return err
	}

	encoded := v.codec.FromScalars(view.Remaining())
	added := len(encoded) - covered
	if added < 0 || !slices.Equal(encoded[added:], outer[:covered]) {
		return &PrintError{
			Kind:    Failed,
			Summary: "printed value does not end on an element boundary of the input",
			Offset:  in.Offset(),
			Near:    near[E](in),
		}
	}
	in.Prepend(encoded[:added]...)
	return nil
}

var _ ParserPrinter[byte, []rune] = ScalarView[byte, []rune]{}
