package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bytesize/internal/usage"
	"bytesize/pkg/bytesize"
	"bytesize/pkg/textalign"
)

func newDuCmd(st *state) *cobra.Command {
	var (
		flags          displayFlags
		minSize        sizeValue
		followSymlinks bool
	)
	cmd := &cobra.Command{
		Use:   "du [path...]",
		Short: "Summarize disk usage per top-level entry",
		Long:  "Sum the sizes of regular files below each path (default \".\"), one line per top-level entry, largest first.",
		Example: `  bytesize du
  bytesize du --min-size 10MiB -f si ~/Downloads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := flags.renderer(st)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			cfg := st.cfg.Usage
			if minSize.set {
				cfg.MinSize = minSize.size
			}
			if cmd.Flags().Changed("follow-symlinks") {
				cfg.FollowSymlinks = followSymlinks
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			scanner := usage.NewScanner(cfg, st.logger)
			out := cmd.OutOrStdout()
			sty := newStyles(out)
			for i, root := range args {
				report, err := scanner.Scan(cmd.Context(), root)
				if err != nil {
					return &ExitError{Code: ExitScanError, Err: err}
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeReport(out, sty, report, cfg.MinSize, render)
			}
			return nil
		},
	}
	flags.bind(cmd.Flags(), false)
	cmd.Flags().Var(&minSize, "min-size", "Hide entries smaller than this, e.g. 10MiB (default from config)")
	cmd.Flags().BoolVarP(&followSymlinks, "follow-symlinks", "L", false, "Count the targets of symlinked files")
	return cmd
}

// writeReport prints one right-aligned size column followed by entry names,
// then the total.
func writeReport(w io.Writer, sty styles, report *usage.Report, minSize bytesize.ByteSize, render func(bytesize.ByteSize) string) {
	sizes := make([]string, len(report.Entries))
	total := render(report.Total)
	width := textalign.Width(total)
	for i, entry := range report.Entries {
		sizes[i] = render(entry.Size)
		width = max(width, textalign.Width(sizes[i]))
	}

	for i, entry := range report.Entries {
		size := textalign.Pad(sizes[i], width, textalign.Right, ' ')
		fmt.Fprintf(w, "%s  %s\n", sty.render(sty.Size, size), entry.Name)
	}

	var notes []string
	notes = append(notes, fmt.Sprintf("%d files", report.Files))
	if report.Hidden > 0 {
		notes = append(notes, fmt.Sprintf("%d below %s hidden", report.Hidden, render(minSize)))
	}
	if report.Unreadable > 0 {
		notes = append(notes, sty.render(sty.Warning, fmt.Sprintf("%d unreadable", report.Unreadable)))
	}
	if report.Saturated {
		notes = append(notes, sty.render(sty.Warning, "total saturated"))
	}
	label := textalign.Pad(total, width, textalign.Right, ' ')
	fmt.Fprintf(w, "%s  %s %s\n",
		sty.render(sty.Total, label),
		sty.render(sty.Total, report.Root),
		sty.render(sty.Faint, "("+strings.Join(notes, ", ")+")"))
}
