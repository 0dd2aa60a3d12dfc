package casefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/duplex/class"
	"github.com/dhamidi/duplex/cursor"
	"github.com/dhamidi/duplex/parsing"
)

var log = commonlog.GetLogger("duplex.casefile")

// Views lists the view names accepted by the view directive.
var Views = []string{"bytes", "runes", "graphemes"}

// Check parses and runs a case file.
func Check(filename string, src io.Reader) (Failures, error) {
	file, err := Parse(filename, src)
	var failures Failures
	if err != nil && !errors.As(err, &failures) {
		return nil, err
	}
	return append(failures, Run(file)...), nil
}

// CheckFile parses and runs the case file at path.
func CheckFile(path string) (Failures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case file: %w", err)
	}
	defer f.Close()

	return Check(path, f)
}

// Run executes the statements of file and returns every failed expectation.
func Run(file *File) Failures {
	r := &run{
		file:    file,
		classes: class.NewSet(),
		view:    "runes",
	}
	for _, stmt := range file.Statements {
		if err := r.exec(stmt); err != nil {
			r.failures = append(r.failures, Failure{
				Filename: file.Filename,
				Line:     stmt.Line,
				Column:   stmt.Column,
				Message:  err.Error(),
			})
		}
	}
	log.Debugf("%s: %d statements, %d failures", file.Filename, len(file.Statements), len(r.failures))
	return r.failures
}

type run struct {
	file     *File
	classes  *class.Set
	prefix   parsing.Prefix[rune]
	view     string
	failures Failures
}

func (r *run) exec(stmt Statement) error {
	switch stmt.Verb {
	case "prefix":
		return r.execPrefix(stmt.Args)
	case "view":
		return r.execView(stmt.Args)
	case "class":
		return r.execClass(stmt)
	case "parse":
		return r.execParse(stmt.Args)
	case "print":
		return r.execPrint(stmt.Args)
	}
	return fmt.Errorf("unknown directive %q", stmt.Verb)
}

func (r *run) execPrefix(args []Arg) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: prefix <length> [class]")
	}
	length, err := ParseLength(args[0].Text)
	if err != nil {
		return err
	}
	var predicate class.Predicate
	if len(args) == 2 {
		predicate, err = r.classes.Lookup(args[1].Text)
		if err != nil {
			return err
		}
	}
	r.prefix = length.Prefix(predicate)
	log.Debugf("%s: using %s", r.file.Filename, r.prefix)
	return nil
}

func (r *run) execView(args []Arg) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view %s", strings.Join(Views, "|"))
	}
	if _, err := NewRunner(args[0].Text, r.prefix); err != nil {
		return err
	}
	r.view = args[0].Text
	log.Debugf("%s: viewing %s", r.file.Filename, args[0].Text)
	return nil
}

func (r *run) execClass(stmt Statement) error {
	grammar, err := class.ParseGrammar(r.file.Filename, strings.NewReader(stmt.Raw))
	if err != nil {
		return err
	}
	_, err = r.classes.DefineGrammar(grammar)
	return err
}

func (r *run) execParse(args []Arg) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: parse <input> <value> <rest> | parse <input> error [kind]")
	}
	runner, err := NewRunner(r.view, r.prefix)
	if err != nil {
		return err
	}
	log.Debugf("%s: parsing with %s", r.file.Filename, runner)

	input := args[0].Text
	value, rest, err := runner.Parse(input)

	if wantErr, kind, ok := expectsError(args[1:]); ok {
		if !wantErr {
			return fmt.Errorf("usage: parse <input> error [kind]")
		}
		if err == nil {
			return fmt.Errorf("parse %q: got %q, want error", input, value)
		}
		return matchKind(err, kind)
	}

	if len(args) != 3 {
		return fmt.Errorf("usage: parse <input> <value> <rest>")
	}
	if err != nil {
		return fmt.Errorf("parse %q: %w", input, err)
	}
	if value != args[1].Text || rest != args[2].Text {
		return fmt.Errorf("parse %q: got %q, %q, want %q, %q", input, value, rest, args[1].Text, args[2].Text)
	}

	printed, err := runner.Print(value, rest)
	if err != nil {
		if maxLength, ok := r.prefix.MaxLength(); ok && errors.Is(err, parsing.ErrAmbiguousBoundary) &&
			len([]rune(value)) == maxLength {
			return nil
		}
		return fmt.Errorf("round trip of %q: %w", input, err)
	}
	if printed != input {
		return fmt.Errorf("round trip of %q printed %q", input, printed)
	}
	return nil
}

func (r *run) execPrint(args []Arg) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: print <value> <into> <result> | print <value> <into> error [kind]")
	}
	runner, err := NewRunner(r.view, r.prefix)
	if err != nil {
		return err
	}

	value, into := args[0].Text, args[1].Text
	printed, err := runner.Print(value, into)

	if wantErr, kind, ok := expectsError(args[2:]); ok {
		if !wantErr {
			return fmt.Errorf("usage: print <value> <into> error [kind]")
		}
		if err == nil {
			return fmt.Errorf("print %q into %q: got %q, want error", value, into, printed)
		}
		return matchKind(err, kind)
	}

	if len(args) != 3 {
		return fmt.Errorf("usage: print <value> <into> <result>")
	}
	if err != nil {
		return fmt.Errorf("print %q into %q: %w", value, into, err)
	}
	if printed != args[2].Text {
		return fmt.Errorf("print %q into %q: got %q, want %q", value, into, printed, args[2].Text)
	}
	return nil
}

// expectsError reports whether args start with the bare word "error". The first
// result is false when "error" is followed by more than a kind.
func expectsError(args []Arg) (bool, string, bool) {
	if len(args) == 0 || args[0].Quoted || args[0].Text != "error" {
		return false, "", false
	}
	switch len(args) {
	case 1:
		return true, "", true
	case 2:
		return true, args[1].Text, true
	}
	return false, "", true
}

func matchKind(err error, kind string) error {
	if kind == "" {
		return nil
	}
	var got string
	var perr *parsing.ParseError
	var prerr *parsing.PrintError
	switch {
	case errors.As(err, &perr):
		got = perr.Kind.String()
	case errors.As(err, &prerr):
		got = prerr.Kind.String()
	default:
		return fmt.Errorf("got error %q, want %s", err, kind)
	}
	if got != kind {
		return fmt.Errorf("got %s error %q, want %s", got, err, kind)
	}
	return nil
}

// Runner runs a rune-level Prefix through one of the standard views, taking and
// returning text.
type Runner interface {
	Parse(input string) (value, rest string, err error)
	Print(value, into string) (string, error)
}

// NewRunner returns a Runner for the named view.
func NewRunner(view string, p parsing.Prefix[rune]) (Runner, error) {
	switch view {
	case "bytes":
		return viewRunner[byte]{view, parsing.FromBytes[[]rune](p), func(s string) []byte { return []byte(s) }}, nil
	case "runes":
		return viewRunner[rune]{view, parsing.FromRunes[[]rune](p), func(s string) []rune { return []rune(s) }}, nil
	case "graphemes":
		return viewRunner[string]{view, parsing.FromGraphemes[[]rune](p), cursor.SplitGraphemes}, nil
	}
	return nil, fmt.Errorf("unknown view %q (want %s)", view, strings.Join(Views, ", "))
}

type viewRunner[E comparable] struct {
	name  string
	view  parsing.ScalarView[E, []rune]
	elems func(string) []E
}

// String describes the runner, e.g. "Prefix(2...4) over bytes".
func (r viewRunner[E]) String() string {
	return fmt.Sprintf("%v over %s", r.view.Inner(), r.name)
}

func (r viewRunner[E]) Parse(input string) (string, string, error) {
	in := cursor.New(r.elems(input))
	v, err := r.view.Parse(in)
	return string(v), cursor.String(in.Remaining()), err
}

func (r viewRunner[E]) Print(value, into string) (string, error) {
	in := cursor.New(r.elems(into))
	if err := r.view.Print([]rune(value), in); err != nil {
		return "", err
	}
	return cursor.String(in.Remaining()), nil
}
