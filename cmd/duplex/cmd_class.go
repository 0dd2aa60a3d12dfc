package main

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/duplex/class"
)

func newClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "class",
		Short:         "Character class tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newClassCheckCmd())

	return cmd
}

func newClassCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse an EBNF grammar and compile its productions into classes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			grammar, err := class.LoadGrammar(filename)
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(cmd, err)
					return err
				}
			}

			names, err := class.NewSet().DefineGrammar(grammar)
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only compiles)")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(out, err)
	}
}
