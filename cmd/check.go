package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cmmoran/mimicgen/pkg/action/check"
)

var ErrDirty = errors.New("mimics are out of date")

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	var showDiff bool

	// checkCmd represents the mimicgen check command
	var checkCmd = &cobra.Command{
		Use:   "check [packages]",
		Short: "check that mimics are up to date",
		Long:  "Render every mimic in memory and compare it with the file on disk; exits non-zero when any mimic is out of date",
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c.Flags(), args)
			if err != nil {
				return err
			}
			reports, err := check.Check(c.Context(), options)
			if err != nil {
				return err
			}
			printReports(c.OutOrStdout(), reports, showDiff)
			if check.Dirty(reports) {
				return ErrDirty
			}
			return nil
		},
	}
	optionFlags(checkCmd)
	checkCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print the difference for stale mimics")

	return checkCmd
}

var statusColors = map[check.Status]*color.Color{
	check.StatusCurrent:  color.New(color.FgGreen),
	check.StatusStale:    color.New(color.FgYellow),
	check.StatusMissing:  color.New(color.FgRed),
	check.StatusOrphaned: color.New(color.FgMagenta),
}

func printReports(w io.Writer, reports []check.Report, showDiff bool) {
	for _, r := range reports {
		statusColors[r.Status].Fprintf(w, "%-9s", r.Status)
		fmt.Fprintf(w, " %s %s\n", r.Target, r.File)
		if showDiff && r.Diff != "" {
			color.New(color.Faint).Fprintln(w, r.Diff)
		}
	}
}
