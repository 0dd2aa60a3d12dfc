package class

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/exp/ebnf"
)

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses EBNF productions from src.
func ParseGrammar(filename string, src io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// DefineGrammar compiles every production of grammar and adds it to the set.
// Names not defined by the grammar resolve to classes already in the set.
// It returns the names of the defined classes in sorted order.
func (s *Set) DefineGrammar(grammar ebnf.Grammar) ([]string, error) {
	c := s.compiler(grammar)
	names := make([]string, 0, len(grammar))
	for name := range grammar {
		names = append(names, name)
	}
	slices.Sort(names)

	compiled := make(map[string]Predicate, len(names))
	for _, name := range names {
		p, err := c.name(name)
		if err != nil {
			return nil, err
		}
		compiled[name] = p
	}
	for name, p := range compiled {
		s.classes[name] = p
	}
	return names, nil
}

// Compile compiles the production called name into a predicate.
func (s *Set) Compile(grammar ebnf.Grammar, name string) (Predicate, error) {
	return s.compiler(grammar).name(name)
}

func (s *Set) compiler(grammar ebnf.Grammar) *compiler {
	return &compiler{
		grammar:  grammar,
		set:      s,
		done:     make(map[string]Predicate),
		visiting: make(map[string]bool),
	}
}

type compiler struct {
	grammar  ebnf.Grammar
	set      *Set
	done     map[string]Predicate
	visiting map[string]bool // cycle detection
}

func (c *compiler) name(name string) (Predicate, error) {
	if p, ok := c.done[name]; ok {
		return p, nil
	}

	prod, ok := c.grammar[name]
	if !ok {
		if p, ok := c.set.classes[name]; ok {
			return p, nil
		}
		return nil, fmt.Errorf("undefined class %q", name)
	}
	if c.visiting[name] {
		return nil, fmt.Errorf("%s: class %q refers to itself", prod.Pos(), name)
	}
	if prod.Expr == nil {
		return nil, fmt.Errorf("%s: class %q is empty", prod.Pos(), name)
	}

	c.visiting[name] = true
	p, err := c.expr(prod.Expr)
	delete(c.visiting, name)
	if err != nil {
		return nil, err
	}

	c.done[name] = p
	return p, nil
}

func (c *compiler) expr(expr ebnf.Expression) (Predicate, error) {
	switch e := expr.(type) {
	case *ebnf.Token:
		r, err := single(e)
		if err != nil {
			return nil, err
		}
		return func(x rune) bool { return x == r }, nil

	case *ebnf.Range:
		begin, err := single(e.Begin)
		if err != nil {
			return nil, err
		}
		end, err := single(e.End)
		if err != nil {
			return nil, err
		}
		if begin > end {
			return nil, fmt.Errorf("%s: empty range %q … %q", e.Pos(), begin, end)
		}
		return func(x rune) bool { return x >= begin && x <= end }, nil

	case ebnf.Alternative:
		alts := make([]Predicate, 0, len(e))
		for _, alt := range e {
			p, err := c.expr(alt)
			if err != nil {
				return nil, err
			}
			alts = append(alts, p)
		}
		return func(x rune) bool {
			for _, p := range alts {
				if p(x) {
					return true
				}
			}
			return false
		}, nil

	case *ebnf.Group:
		return c.expr(e.Body)

	case *ebnf.Name:
		p, err := c.name(e.String)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Pos(), err)
		}
		return p, nil

	case ebnf.Sequence:
		return nil, fmt.Errorf("%s: a class matches one character, not a sequence", e.Pos())

	case nil:
		return nil, fmt.Errorf("empty class expression")

	default:
		return nil, fmt.Errorf("%s: a class matches one character, not %T", expr.Pos(), expr)
	}
}

func single(tok *ebnf.Token) (rune, error) {
	runes := []rune(tok.String)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%s: %q is not a single character", tok.Pos(), tok.String)
	}
	return runes[0], nil
}
