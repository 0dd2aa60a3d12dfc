package parsing

import (
	"errors"
	"slices"
	"testing"
	"unicode"

	"github.com/dhamidi/duplex/cursor"
)

// parseOnly hides the printer half of a combinator.
type parseOnly[O any] struct {
	Parser[rune, O]
}

func TestFromBytesParse(t *testing.T) {
	tests := []struct {
		name   string
		inner  Prefix[rune]
		input  string
		want   string
		rest   string
		offset int
	}{
		{"ascii", PrefixWhile(unicode.IsDigit), "123 abc", "123", " abc", 3},
		{"multi-byte scalars", PrefixN[rune](2, nil), "日本語", "日本", "語", 6},
		{"letters then space", PrefixWhile(unicode.IsLetter), "héllo wörld", "héllo", " wörld", 6},
		{"emoji", PrefixN[rune](1, nil), "🙂x", "🙂", "x", 4},
		{"invalid utf-8 ends view", PrefixWhile(unicode.IsLetter), "ab\xffcd", "ab", "\xffcd", 2},
		{"truncated sequence ends view", PrefixWhile(unicode.IsLetter), "ab\xe6\x97", "ab", "\xe6\x97", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromBytes[[]rune](tt.inner)
			in := cursor.Bytes(tt.input)
			got, err := p.Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if string(got) != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, string(got), tt.want)
			}
			if rest := string(in.Remaining()); rest != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}
			if in.Offset() != tt.offset {
				t.Errorf("Offset = %d, want %d", in.Offset(), tt.offset)
			}
		})
	}
}

func TestFromBytesNeverSplitsScalar(t *testing.T) {
	input := "aé日🙂b"
	scalars := []rune(input)

	for n := 0; n <= len(scalars); n++ {
		in := cursor.Bytes(input)
		if _, err := FromBytes[[]rune](PrefixN[rune](n, nil)).Parse(in); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := string(scalars[n:])
		if got := string(in.Remaining()); got != want {
			t.Errorf("n=%d: rest = %q, want %q", n, got, want)
		}
		if in.Offset() != len(input)-len(want) {
			t.Errorf("n=%d: Offset = %d, want %d", n, in.Offset(), len(input)-len(want))
		}
	}
}

func TestFromBytesInvalidInputNeedsMore(t *testing.T) {
	in := cursor.Bytes("\xff123")
	_, err := FromBytes[[]rune](PrefixFrom(1, unicode.IsDigit)).Parse(in)
	if !errors.Is(err, ErrExpectedInput) {
		t.Fatalf("error = %v, want ErrExpectedInput", err)
	}
	if got := string(in.Remaining()); got != "\xff123" {
		t.Errorf("rest = %q, want input unchanged", got)
	}
}

func TestFromBytesFailureMirrorsInner(t *testing.T) {
	in := cursor.Bytes("ü1x")
	_, err := FromBytes[[]rune](PrefixFrom(3, func(r rune) bool { return r != 'x' })).Parse(in)
	if !errors.Is(err, ErrExpectedInput) {
		t.Fatalf("error = %v, want ErrExpectedInput", err)
	}
	if got := string(in.Remaining()); got != "x" {
		t.Errorf("rest = %q, want %q", got, "x")
	}
}

func TestFromBytesPrint(t *testing.T) {
	p := FromBytes[[]rune](PrefixWhile(unicode.IsLetter))

	in := cursor.Bytes(" wörld")
	if err := p.Print([]rune("héllo"), in); err != nil {
		t.Fatal(err)
	}
	if got := string(in.Remaining()); got != "héllo wörld" {
		t.Errorf("cursor = %q", got)
	}
	if in.Offset() != -6 {
		t.Errorf("Offset = %d, want -6", in.Offset())
	}

	in = cursor.Bytes("ö")
	err := p.Print([]rune("hall"), in)
	if !errors.Is(err, ErrAmbiguousBoundary) {
		t.Errorf("error = %v, want ErrAmbiguousBoundary", err)
	}
	if got := string(in.Remaining()); got != "ö" {
		t.Errorf("cursor modified on failure: %q", got)
	}
}

func TestFromBytesPrintKeepsInvalidTail(t *testing.T) {
	p := FromBytes[[]rune](PrefixWhile(unicode.IsLetter))
	in := cursor.Bytes(" \xff")
	if err := p.Print([]rune("ab"), in); err != nil {
		t.Fatal(err)
	}
	if got := string(in.Remaining()); got != "ab \xff" {
		t.Errorf("cursor = %q, want %q", got, "ab \xff")
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	p := FromBytes[[]rune](PrefixRange(1, 4, func(r rune) bool { return !unicode.IsSpace(r) }))
	inputs := []string{"日本語 text", "a b", "ab\xffc", "🙂🙂🙂🙂🙂", "x"}

	for _, input := range inputs {
		in := cursor.Bytes(input)
		v, err := p.Parse(in)
		if err != nil {
			continue
		}
		if err := p.Print(v, in); err != nil {
			if errors.Is(err, ErrAmbiguousBoundary) {
				continue
			}
			t.Fatalf("Print(%q) failed: %v", string(v), err)
		}
		if got := string(in.Remaining()); got != input {
			t.Errorf("round trip of %q gave %q", input, got)
		}
	}
}

func TestFromGraphemes(t *testing.T) {
	p := FromGraphemes[[]rune](PrefixWhile(unicode.IsLetter))
	in := cursor.Graphemes("été 2024")

	got, err := p.Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "été" {
		t.Errorf("Parse = %q, want %q", string(got), "été")
	}
	if in.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", in.Offset())
	}
	if rest := cursor.String(in.Remaining()); rest != " 2024" {
		t.Errorf("rest = %q", rest)
	}

	if err := p.Print(got, in); err != nil {
		t.Fatal(err)
	}
	if s := cursor.String(in.Remaining()); s != "été 2024" {
		t.Errorf("printed = %q", s)
	}
}

func TestFromGraphemesMisaligned(t *testing.T) {
	decomposed := "e\u0301x"
	in := cursor.Graphemes(decomposed)
	if in.Len() != 2 {
		t.Fatalf("clusters = %q, want 2", in.Remaining())
	}

	_, err := FromGraphemes[[]rune](PrefixN[rune](1, nil)).Parse(in)
	if !errors.Is(err, ErrMisaligned) {
		t.Fatalf("error = %v, want ErrMisaligned", err)
	}
	if in.Offset() != 0 || cursor.String(in.Remaining()) != decomposed {
		t.Errorf("cursor moved on misaligned parse: %q", in.Remaining())
	}

	// Two scalars cover the whole first cluster.
	v, err := FromGraphemes[[]rune](PrefixN[rune](2, nil)).Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "e\u0301" || in.Offset() != 1 {
		t.Errorf("Parse = %q at offset %d", string(v), in.Offset())
	}
}

func TestFromGraphemesPrintMisaligned(t *testing.T) {
	in := cursor.Graphemes("\u0301x")
	err := FromGraphemes[[]rune](PrefixN[rune](1, nil)).Print([]rune("e"), in)
	if !errors.Is(err, ErrPrintFailed) {
		t.Fatalf("error = %v, want ErrPrintFailed", err)
	}
	if !slices.Equal(in.Remaining(), []string{"\u0301", "x"}) {
		t.Errorf("cursor modified: %q", in.Remaining())
	}
}

func TestFromRunes(t *testing.T) {
	p := FromRunes[[]rune](PrefixWhile(unicode.IsLetter))

	in := cursor.New([]rune{'a', 'b', 0xD800, 'c'})
	v, err := p.Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "ab" || in.Len() != 2 {
		t.Errorf("Parse = %q leaving %d runes", string(v), in.Len())
	}

	in = cursor.Runes("123")
	if err := p.Print([]rune("xyz"), in); err != nil {
		t.Fatal(err)
	}
	if got := string(in.Remaining()); got != "xyz123" {
		t.Errorf("cursor = %q", got)
	}
}

func TestScalarViewParseOnlyInner(t *testing.T) {
	p := FromBytes[[]rune](parseOnly[[]rune]{PrefixWhile(unicode.IsDigit)})

	v, rest, err := Parse[byte, []rune](p, []byte("12ab"))
	if err != nil || string(v) != "12" || string(rest) != "ab" {
		t.Errorf("Parse = %q, %q, %v", string(v), rest, err)
	}

	err = p.Print([]rune("12"), cursor.Bytes("ab"))
	if !errors.Is(err, ErrPrintFailed) {
		t.Errorf("Print error = %v, want ErrPrintFailed", err)
	}
}

func TestScalarViewReadOnlyCursor(t *testing.T) {
	in := cursor.Scan([]byte("42 apples"))
	v, err := FromBytes[[]rune](PrefixWhile(unicode.IsDigit)).Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "42" || string(in.Remaining()) != " apples" {
		t.Errorf("Parse = %q, rest %q", string(v), in.Remaining())
	}
}
