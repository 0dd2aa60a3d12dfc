// Package cursor provides the input abstraction threaded through parser-printers.
//
// A cursor is an ordered sequence with a movable front boundary. Parsing only ever
// advances the boundary; printing only ever retreats it by prepending elements.
// Read-only cursors implement [Sequence]; cursors that can be printed into also
// implement [Prependable].
package cursor

import "fmt"

// Sequence is the parse side of a cursor.
type Sequence[E any] interface {
	// Len returns the number of elements in front of the boundary.
	Len() int

	// Peek returns at most n elements from the front without advancing.
	// The returned slice must not be modified.
	Peek(n int) []E

	// RemoveFirst advances the boundary by n elements.
	// It panics if n is negative or greater than Len.
	RemoveFirst(n int)

	// Offset returns the number of elements removed minus the number of
	// elements prepended since the cursor was created.
	Offset() int
}

// Prependable is the print side of a cursor.
type Prependable[E any] interface {
	Sequence[E]

	// Prepend inserts elems in front of the boundary.
	Prepend(elems ...E)
}

// Scanner is a read-only cursor over a slice.
type Scanner[E any] struct {
	elems  []E
	offset int
}

// Scan returns a read-only cursor over elems. The slice is not copied.
func Scan[E any](elems []E) *Scanner[E] {
	return &Scanner[E]{elems: elems}
}

func (s *Scanner[E]) Len() int {
	return len(s.elems)
}

func (s *Scanner[E]) Peek(n int) []E {
	if n < 0 {
		n = 0
	}
	if n > len(s.elems) {
		n = len(s.elems)
	}
	return s.elems[:n:n]
}

func (s *Scanner[E]) RemoveFirst(n int) {
	if n < 0 || n > len(s.elems) {
		panic(fmt.Sprintf("cursor: cannot remove %d of %d elements", n, len(s.elems)))
	}
	s.elems = s.elems[n:]
	s.offset += n
}

func (s *Scanner[E]) Offset() int {
	return s.offset
}

// Remaining returns the elements in front of the boundary.
func (s *Scanner[E]) Remaining() []E {
	return s.elems[:len(s.elems):len(s.elems)]
}

// Buffer is a cursor that can be printed into.
//
// Prepend always allocates fresh storage, so slices previously returned by Peek or
// Remaining stay valid.
type Buffer[E any] struct {
	Scanner[E]
}

// New returns a prependable cursor over elems. The slice is not copied.
func New[E any](elems []E) *Buffer[E] {
	return &Buffer[E]{Scanner: Scanner[E]{elems: elems}}
}

// Bytes returns a prependable cursor over the UTF-8 bytes of s.
func Bytes(s string) *Buffer[byte] {
	return New([]byte(s))
}

// Runes returns a prependable cursor over the runes of s.
func Runes(s string) *Buffer[rune] {
	return New([]rune(s))
}

func (b *Buffer[E]) Prepend(elems ...E) {
	if len(elems) == 0 {
		return
	}
	joined := make([]E, 0, len(elems)+len(b.elems))
	joined = append(joined, elems...)
	joined = append(joined, b.elems...)
	b.elems = joined
	b.offset -= len(elems)
}

var (
	_ Sequence[byte]    = (*Scanner[byte])(nil)
	_ Prependable[rune] = (*Buffer[rune])(nil)
)
