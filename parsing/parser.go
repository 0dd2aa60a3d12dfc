// Package parsing provides bidirectional parser-printers.
//
// Every combinator in this package is both a [Parser], which consumes a prefix of a
// cursor and returns a value, and a [Printer], which prepends the representation of a
// value to a cursor. The two directions obey the round-trip law: parsing what was
// printed yields the printed value, and printing what was parsed restores the
// consumed input.
//
// # Combinators
//
//   - [Prefix]: consumes a length- and predicate-bounded run of elements.
//   - [ScalarView]: runs a rune-level combinator over bytes, grapheme clusters or runes.
//
// # Errors
//
// Parsers fail with [*ParseError] and printers with [*PrintError]. Each error kind has
// a sentinel such as [ErrExpectedInput] or [ErrAmbiguousBoundary] for use with
// errors.Is.
package parsing

import "github.com/dhamidi/duplex/cursor"

// Parser consumes a prefix of a cursor and produces a value.
//
// On success the cursor has advanced by exactly the consumed length.
type Parser[E, O any] interface {
	Parse(in cursor.Sequence[E]) (O, error)
}

// Printer prepends the representation of a value to a cursor.
//
// Print fails when out could not have been produced by the matching Parse.
type Printer[E, O any] interface {
	Print(out O, in cursor.Prependable[E]) error
}

// ParserPrinter is implemented by combinators that work in both directions.
type ParserPrinter[E, O any] interface {
	Parser[E, O]
	Printer[E, O]
}

// Parse runs p over elems and returns its output together with the unconsumed rest.
func Parse[E, O any](p Parser[E, O], elems []E) (O, []E, error) {
	in := cursor.Scan(elems)
	out, err := p.Parse(in)
	return out, in.Remaining(), err
}

// ParseAll runs p over elems and fails unless all input was consumed.
func ParseAll[E, O any](p Parser[E, O], elems []E) (O, error) {
	in := cursor.Scan(elems)
	out, err := p.Parse(in)
	if err != nil {
		return out, err
	}
	if in.Len() > 0 {
		var zero O
		return zero, &ParseError{
			Kind:   ExpectedEnd,
			Offset: in.Offset(),
			Near:   near[E](in),
		}
	}
	return out, nil
}

// Print prints out into an empty cursor and returns the resulting elements.
func Print[E, O any](p Printer[E, O], out O) ([]E, error) {
	return PrintInto(p, out, nil)
}

// PrintInto prints out in front of rest and returns the resulting elements.
func PrintInto[E, O any](p Printer[E, O], out O, rest []E) ([]E, error) {
	b := cursor.New(rest)
	if err := p.Print(out, b); err != nil {
		return nil, err
	}
	return b.Remaining(), nil
}
