package cursor

import (
	"slices"
	"testing"
)

func TestScannerPeekDoesNotAdvance(t *testing.T) {
	s := Scan([]rune("hello"))

	if got := string(s.Peek(3)); got != "hel" {
		t.Errorf("Peek(3) = %q, want %q", got, "hel")
	}
	if got := string(s.Peek(10)); got != "hello" {
		t.Errorf("Peek(10) = %q, want %q", got, "hello")
	}
	if got := s.Peek(-1); len(got) != 0 {
		t.Errorf("Peek(-1) = %q, want empty", string(got))
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
	if s.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", s.Offset())
	}
}

func TestScannerRemoveFirst(t *testing.T) {
	s := Scan([]byte("hello"))
	s.RemoveFirst(2)

	if got := string(s.Remaining()); got != "llo" {
		t.Errorf("Remaining = %q, want %q", got, "llo")
	}
	if s.Offset() != 2 {
		t.Errorf("Offset = %d, want 2", s.Offset())
	}

	s.RemoveFirst(0)
	if s.Offset() != 2 {
		t.Errorf("Offset after RemoveFirst(0) = %d, want 2", s.Offset())
	}
}

func TestScannerRemoveFirstPanicsPastEnd(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RemoveFirst past the end did not panic")
		}
	}()
	Scan([]byte("ab")).RemoveFirst(3)
}

func TestBufferPrepend(t *testing.T) {
	b := Runes("abc")
	b.RemoveFirst(1)
	b.Prepend([]rune("xy")...)

	if got := string(b.Remaining()); got != "xybc" {
		t.Errorf("Remaining = %q, want %q", got, "xybc")
	}
	if b.Offset() != -1 {
		t.Errorf("Offset = %d, want -1", b.Offset())
	}
}

func TestBufferPrependKeepsPeekedSlices(t *testing.T) {
	b := Bytes("world")
	peeked := b.Peek(3)
	b.Prepend([]byte("hello ")...)

	if got := string(peeked); got != "wor" {
		t.Errorf("peeked slice = %q after Prepend, want %q", got, "wor")
	}
	if got := string(b.Remaining()); got != "hello world" {
		t.Errorf("Remaining = %q, want %q", got, "hello world")
	}
}

func TestPeekIsCapped(t *testing.T) {
	b := Runes("abc")
	p := b.Peek(1)
	p = append(p, 'z')

	if got := string(b.Remaining()); got != "abc" {
		t.Errorf("append to peeked slice modified the cursor: %q", got)
	}
	_ = p
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"abc", []string{"a", "b", "c"}},
		{"e\u0301t\u00e9", []string{"e\u0301", "t", "\u00e9"}},
		{"🇩🇪!", []string{"🇩🇪", "!"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Graphemes(tt.input).Remaining()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Graphemes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := String([]byte("ab")); got != "ab" {
		t.Errorf("String(bytes) = %q", got)
	}
	if got := String([]rune("äb")); got != "äb" {
		t.Errorf("String(runes) = %q", got)
	}
	if got := String([]string{"e\u0301", "x"}); got != "e\u0301x" {
		t.Errorf("String(graphemes) = %q", got)
	}
	if got := String([]int{1, 2}); got != "1 2" {
		t.Errorf("String(ints) = %q", got)
	}
}
