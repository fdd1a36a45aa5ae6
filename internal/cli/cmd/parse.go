package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bytesize/pkg/bytesize"
)

func newParseCmd(st *state) *cobra.Command {
	var (
		flags     displayFlags
		bytesOnly bool
	)
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse human-readable sizes into byte counts",
		Long:  "Parse each argument, or each line of stdin when no arguments are given, and print the byte count followed by its canonical rendering. Stops with exit status 1 at the first invalid size.",
		Example: `  bytesize parse 1.5KiB "301.0 kB"
  bytesize parse --bytes-only 8Mb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := flags.renderer(st)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			out := cmd.OutOrStdout()
			return eachInput(cmd, args, func(input string) error {
				size, err := bytesize.Parse(input)
				if err != nil {
					return &ExitError{Code: ExitCLIError, Err: err}
				}
				if bytesOnly {
					_, err = fmt.Fprintf(out, "%d\n", size)
				} else {
					_, err = fmt.Fprintf(out, "%d\t%s\n", size, render(size))
				}
				return err
			})
		},
	}
	flags.bind(cmd.Flags(), false)
	cmd.Flags().BoolVarP(&bytesOnly, "bytes-only", "b", false, "Print only the byte count")
	return cmd
}
