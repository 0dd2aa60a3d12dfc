package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPrintCmd() *cobra.Command {
	var flags prefixFlags

	cmd := &cobra.Command{
		Use:           "print <value> [into]",
		Short:         "Print value in front of existing input",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := flags.runner()
			if err != nil {
				return err
			}

			into := ""
			if len(args) == 2 {
				into = args[1]
			}

			result, err := runner.Print(args[0], into)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", result)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
