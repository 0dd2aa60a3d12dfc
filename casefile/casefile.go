// Package casefile reads and runs round-trip case files.
//
// A case file configures a Prefix parser-printer and lists expectations for it, one
// directive per line:
//
//	# two to four digits, read through a UTF-8 byte view
//	prefix 2...4 digit
//	view bytes
//	parse "123456" "1234" "56"
//	parse "1" error expected-input
//	print "123" "abc" "123abc"
//	print "123" "456" error ambiguous-boundary
//	class ident = letter | digit | "_" .
//
// Arguments are bare words or Go-quoted strings. Every successful parse is also
// printed back and checked against its input.
package casefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/duplex/class"
	"github.com/dhamidi/duplex/cursor"
	"github.com/dhamidi/duplex/parsing"
)

// Failure is a problem found on one line of a case file.
type Failure struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (f Failure) String() string {
	if f.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", f.Filename, f.Line, f.Column, f.Message)
	}
	return fmt.Sprintf("%d:%d: %s", f.Line, f.Column, f.Message)
}

// Failures is a list of failures that can be returned as an error.
type Failures []Failure

func (fs Failures) Error() string {
	lines := make([]string, len(fs))
	for i, f := range fs {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}

// Arg is one argument of a statement.
type Arg struct {
	Text   string
	Quoted bool
	Column int
}

// Statement is one directive of a case file.
type Statement struct {
	Line   int
	Column int
	Verb   string
	Args   []Arg
	// Raw is the unparsed text after the verb.
	Raw string
}

// File is a parsed case file.
type File struct {
	Filename   string
	Statements []Statement
}

// MaxLineLength is the longest line, in bytes, that Parse accepts.
const MaxLineLength = 16 << 20

var (
	blank = parsing.PrefixWhile(unicode.IsSpace)
	word  = parsing.PrefixFrom(1, func(r rune) bool {
		return !unicode.IsSpace(r) && r != '"' && r != '`' && r != '#'
	})
)

// Parse reads a case file. Lines that cannot be tokenized are reported as
// Failures; the statements of all other lines are still returned.
func Parse(filename string, src io.Reader) (*File, error) {
	file := &File{Filename: filename}
	var failures Failures

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		stmt, err := parseLine(scanner.Text())
		if err != nil {
			failures = append(failures, Failure{
				Filename: filename,
				Line:     lineNo,
				Column:   err.column,
				Message:  err.message,
			})
			continue
		}
		if stmt.Verb == "" {
			continue
		}
		stmt.Line = lineNo
		file.Statements = append(file.Statements, stmt)
	}
	if err := scanner.Err(); err != nil {
		return file, fmt.Errorf("read case file: %w", err)
	}
	if len(failures) > 0 {
		return file, failures
	}
	return file, nil
}

type lineError struct {
	column  int
	message string
}

func parseLine(line string) (Statement, *lineError) {
	var stmt Statement
	in := cursor.Runes(line)

	for {
		// blank never fails: it has no minimum length.
		blank.Parse(in)
		if in.Len() == 0 {
			return stmt, nil
		}
		column := in.Offset() + 1
		next := in.Peek(1)[0]

		if next == '#' {
			return stmt, nil
		}

		if stmt.Verb == "" {
			if next == '"' || next == '`' {
				return stmt, &lineError{column, "expected a directive, found a string"}
			}
			verb, _ := word.Parse(in)
			stmt.Verb = string(verb)
			stmt.Column = column
			stmt.Raw = strings.TrimSpace(string(in.Remaining()))
			if stmt.Verb == "class" {
				return stmt, nil
			}
			continue
		}

		if next == '"' || next == '`' {
			rest := string(in.Remaining())
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return stmt, &lineError{column, fmt.Sprintf("unterminated string %s", rest)}
			}
			text, err := strconv.Unquote(quoted)
			if err != nil {
				return stmt, &lineError{column, fmt.Sprintf("invalid string %s: %v", quoted, err)}
			}
			in.RemoveFirst(utf8.RuneCountInString(quoted))
			stmt.Args = append(stmt.Args, Arg{Text: text, Quoted: true, Column: column})
			continue
		}

		text, _ := word.Parse(in)
		stmt.Args = append(stmt.Args, Arg{Text: string(text), Column: column})
	}
}

// Length is a parsed length range such as "2...4".
type Length struct {
	Min     int
	Max     int
	Bounded bool
}

var (
	number = parsing.PrefixFrom(1, func(r rune) bool { return r >= '0' && r <= '9' })
	dots   = parsing.PrefixN[rune](3, class.Is('.'))
)

// ParseLength parses "*", "N", "A...B", "A..." or "...B".
func ParseLength(s string) (Length, error) {
	if s == "*" {
		return Length{}, nil
	}

	in := cursor.Runes(s)
	lo, loErr := number.Parse(in)
	before := in.Offset()
	if _, err := dots.Parse(in); err != nil {
		// A failed dots parse still consumes a partial run such as "..".
		if loErr != nil || in.Offset() != before || in.Len() > 0 {
			return Length{}, fmt.Errorf("invalid length %q", s)
		}
		n := atoi(lo)
		return Length{Min: n, Max: n, Bounded: true}, nil
	}
	hi, hiErr := number.Parse(in)
	if in.Len() > 0 || (loErr != nil && hiErr != nil) {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}

	var l Length
	if loErr == nil {
		l.Min = atoi(lo)
	}
	if hiErr == nil {
		l.Max = atoi(hi)
		l.Bounded = true
	}
	return l, nil
}

func atoi(digits []rune) int {
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		// Only digits reach here, so this is an overflow.
		return int(^uint(0) >> 1)
	}
	return n
}

// Prefix returns a Prefix with this length and the given predicate, which may be nil.
func (l Length) Prefix(predicate class.Predicate) parsing.Prefix[rune] {
	switch {
	case !l.Bounded:
		return parsing.PrefixFrom[rune](l.Min, predicate)
	case l.Min == l.Max:
		return parsing.PrefixN[rune](l.Min, predicate)
	case l.Min == 0:
		return parsing.PrefixThrough[rune](l.Max, predicate)
	}
	return parsing.PrefixRange[rune](l.Min, l.Max, predicate)
}

func (l Length) String() string {
	switch {
	case !l.Bounded && l.Min == 0:
		return "*"
	case !l.Bounded:
		return fmt.Sprintf("%d...", l.Min)
	case l.Min == l.Max:
		return strconv.Itoa(l.Min)
	case l.Min == 0:
		return fmt.Sprintf("...%d", l.Max)
	}
	return fmt.Sprintf("%d...%d", l.Min, l.Max)
}
