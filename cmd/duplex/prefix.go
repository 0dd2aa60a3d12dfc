package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/duplex/casefile"
	"github.com/dhamidi/duplex/class"
)

// prefixFlags configures a Prefix from the command line.
type prefixFlags struct {
	length   string
	class    string
	view     string
	grammars []string
}

func (f *prefixFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.length, "length", "l", "*", "length range: *, N, A...B, A... or ...B")
	cmd.Flags().StringVarP(&f.class, "class", "c", "", "character class every element must belong to")
	cmd.Flags().StringVar(&f.view, "view", "runes", "input view: bytes, runes or graphemes")
	cmd.Flags().StringArrayVarP(&f.grammars, "grammar", "g", nil, "EBNF file defining extra classes (repeatable)")
}

func (f *prefixFlags) runner() (casefile.Runner, error) {
	length, err := casefile.ParseLength(f.length)
	if err != nil {
		return nil, err
	}

	classes := class.NewSet()
	for _, filename := range f.grammars {
		grammar, err := class.LoadGrammar(filename)
		if err != nil {
			return nil, err
		}
		if _, err := classes.DefineGrammar(grammar); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	var predicate class.Predicate
	if f.class != "" {
		predicate, err = classes.Lookup(f.class)
		if err != nil {
			return nil, err
		}
	}

	runner, err := casefile.NewRunner(f.view, length.Prefix(predicate))
	if err != nil {
		return nil, err
	}
	log.Debugf("using %s", runner)
	return runner, nil
}
