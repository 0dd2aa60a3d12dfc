package parsing

import (
	"fmt"
	"strings"

	"github.com/dhamidi/duplex/cursor"
)

// nearLength is the number of upcoming elements quoted in error messages.
const nearLength = 16

type ParseErrorKind int

const (
	// ExpectedInput means fewer matching elements were available than required.
	ExpectedInput ParseErrorKind = iota
	// ExpectedEnd means input remained after a complete parse.
	ExpectedEnd
	// Misaligned means a view boundary fell inside an element of the outer cursor.
	Misaligned
)

var parseErrorKindNames = map[ParseErrorKind]string{
	ExpectedInput: "expected-input",
	ExpectedEnd:   "expected-end",
	Misaligned:    "misaligned",
}

func (k ParseErrorKind) String() string {
	if name, ok := parseErrorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseError is returned by parsers.
type ParseError struct {
	Kind ParseErrorKind
	// Needed is the number of additional elements that were required.
	Needed int
	// HadAny reports whether at least one matching element was found.
	HadAny bool
	// Predicate reports whether a predicate restricted the elements.
	Predicate bool
	// Offset is the cursor offset at which the error was detected.
	Offset int
	// Near quotes the upcoming input, empty at the end of input.
	Near string
}

var (
	ErrExpectedInput = &ParseError{Kind: ExpectedInput}
	ErrExpectedEnd   = &ParseError{Kind: ExpectedEnd}
	ErrMisaligned    = &ParseError{Kind: Misaligned}
)

// Expectation describes what the parser wanted to see, e.g.
// "2 more elements satisfying predicate".
func (e *ParseError) Expectation() string {
	switch e.Kind {
	case ExpectedInput:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", e.Needed)
		if e.HadAny {
			sb.WriteString("more ")
		}
		sb.WriteString(noun(e.Needed, "element"))
		if e.Predicate {
			sb.WriteString(" satisfying predicate")
		}
		return sb.String()
	case ExpectedEnd:
		return "end of input"
	case Misaligned:
		return "view boundary on an element boundary"
	}
	return e.Kind.String()
}

func (e *ParseError) Error() string {
	found := "end of input"
	if e.Near != "" {
		found = fmt.Sprintf("%q", e.Near)
	}
	return fmt.Sprintf("unexpected input at offset %d: expected %s, found %s", e.Offset, e.Expectation(), found)
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

type PrintErrorKind int

const (
	// TooShort means the value has fewer elements than the minimum length.
	TooShort PrintErrorKind = iota
	// TooLong means the value has more elements than the maximum length.
	TooLong
	// PredicateViolated means an element of the value fails the predicate.
	PredicateViolated
	// AmbiguousBoundary means the element following the value satisfies the
	// predicate, so parsing would not stop where the value ends.
	AmbiguousBoundary
	// Failed is any other round-trip failure, described by Summary.
	Failed
)

var printErrorKindNames = map[PrintErrorKind]string{
	TooShort:          "too-short",
	TooLong:           "too-long",
	PredicateViolated: "predicate-violated",
	AmbiguousBoundary: "ambiguous-boundary",
	Failed:            "failed",
}

func (k PrintErrorKind) String() string {
	if name, ok := printErrorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// PrintError is returned by printers. It always signals a value that the matching
// parser could never have produced.
type PrintError struct {
	Kind PrintErrorKind
	// Min and Max are the configured bounds; Max is -1 when unbounded.
	Min, Max int
	// Count is the number of elements handed to the printer.
	Count int
	// Summary describes Failed errors.
	Summary string
	// Offset and Near describe the cursor the value was printed into.
	Offset int
	Near   string
}

var (
	ErrTooShort          = &PrintError{Kind: TooShort}
	ErrTooLong           = &PrintError{Kind: TooLong}
	ErrPredicateViolated = &PrintError{Kind: PredicateViolated}
	ErrAmbiguousBoundary = &PrintError{Kind: AmbiguousBoundary}
	ErrPrintFailed       = &PrintError{Kind: Failed}
)

func (e *PrintError) summary() string {
	switch e.Kind {
	case TooShort:
		return fmt.Sprintf(`a "Prefix" parser that parses at least %s was given only %s to print`,
			plural(e.Min, "element"), plural(e.Count, "element"))
	case TooLong:
		return fmt.Sprintf(`a "Prefix" parser that parses at most %s was given %s to print`,
			plural(e.Max, "element"), plural(e.Count, "element"))
	case PredicateViolated:
		return `a "Prefix" parser's predicate failed to satisfy all elements it was handed to print`
	case AmbiguousBoundary:
		return `a "Prefix" parser's predicate satisfied the first element printed by the next printer`
	}
	return e.Summary
}

func (e *PrintError) Error() string {
	msg := fmt.Sprintf("round-trip expectation failed at offset %d: %s", e.Offset, e.summary())
	if e.Near != "" {
		msg += fmt.Sprintf(" (before %q)", e.Near)
	}
	return msg
}

// Is reports whether target is a *PrintError of the same kind.
func (e *PrintError) Is(target error) bool {
	t, ok := target.(*PrintError)
	return ok && t.Kind == e.Kind
}

func near[E any](in cursor.Sequence[E]) string {
	return cursor.String(in.Peek(nearLength))
}

func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, noun(n, word))
}

func noun(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
