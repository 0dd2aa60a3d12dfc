// Package class provides named character classes for use as Prefix predicates.
//
// A [Set] starts out with the builtin classes and can be extended with classes
// compiled from EBNF productions whose alternatives are single characters or
// character ranges:
//
//	ident = letter | digit | "_" .
//	hex   = "0" … "9" | "a" … "f" | "A" … "F" .
package class

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Predicate reports whether a rune belongs to a class.
type Predicate func(rune) bool

var builtins = map[string]Predicate{
	"any":    func(rune) bool { return true },
	"digit":  func(r rune) bool { return r >= '0' && r <= '9' },
	"letter": unicode.IsLetter,
	"space":  unicode.IsSpace,
	"upper":  unicode.IsUpper,
	"lower":  unicode.IsLower,
	"punct":  unicode.IsPunct,
	"alnum":  func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	"hex": func(r rune) bool {
		return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
	},
	"word": func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) },
}

// Set is a collection of named classes.
type Set struct {
	classes map[string]Predicate
}

// NewSet returns a set containing the builtin classes.
func NewSet() *Set {
	s := &Set{classes: make(map[string]Predicate, len(builtins))}
	for name, p := range builtins {
		s.classes[name] = p
	}
	return s
}

// Define adds or replaces a class.
func (s *Set) Define(name string, p Predicate) {
	s.classes[name] = p
}

// Lookup returns the class called name. A leading "!" negates the class.
func (s *Set) Lookup(name string) (Predicate, error) {
	if negated, ok := strings.CutPrefix(name, "!"); ok {
		p, err := s.Lookup(negated)
		if err != nil {
			return nil, err
		}
		return Not(p), nil
	}
	p, ok := s.classes[name]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", name)
	}
	return p, nil
}

// Names returns the sorted class names.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(r rune) bool { return !p(r) }
}

// Is returns a class containing exactly the given runes.
func Is(runes ...rune) Predicate {
	return func(r rune) bool { return slices.Contains(runes, r) }
}
