package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var flags prefixFlags

	cmd := &cobra.Command{
		Use:           "parse <input>",
		Short:         "Parse a prefix of input and print the value and the rest",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := flags.runner()
			if err != nil {
				return err
			}

			value, rest, err := runner.Parse(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "value: %q\nrest:  %q\n", value, rest)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
