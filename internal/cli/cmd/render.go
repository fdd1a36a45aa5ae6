package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bytesize/pkg/bytesize"
)

func newRenderCmd(st *state) *cobra.Command {
	var flags displayFlags
	cmd := &cobra.Command{
		Use:   "render [bytes...]",
		Short: "Render byte counts as human-readable sizes",
		Long:  "Render each argument, or each line of stdin when no arguments are given. Arguments may be plain byte counts or sizes such as 1.5GiB.",
		Example: `  bytesize render 1536
  bytesize render -f si -p 2 1500000
  du -b * | cut -f1 | bytesize render -f iec-short -w 8 --align right`,
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := flags.renderer(st)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return eachInput(cmd, args, func(input string) error {
				size, err := bytesize.Parse(input)
				if err != nil {
					return &ExitError{Code: ExitCLIError, Err: err}
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), render(size))
				return err
			})
		},
	}
	flags.bind(cmd.Flags(), true)
	return cmd
}

// eachInput calls fn for every argument, or for every non-blank stdin line
// when there are no arguments. It stops at the first error.
func eachInput(cmd *cobra.Command, args []string, fn func(string) error) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := fn(arg); err != nil {
				return err
			}
		}
		return nil
	}
	return eachLine(cmd.InOrStdin(), fn)
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("read stdin: %w", err)}
	}
	return nil
}
