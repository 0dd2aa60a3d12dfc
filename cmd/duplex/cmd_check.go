package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/duplex/casefile"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>...",
		Short:         "Run round-trip case files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				failures, err := casefile.CheckFile(path)
				if err != nil {
					return err
				}
				for _, f := range failures {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				log.Infof("%s: %d failures", path, len(failures))
				failed += len(failures)
			}

			if failed > 0 {
				return fmt.Errorf("%d failed expectations", failed)
			}
			return nil
		},
	}
}
