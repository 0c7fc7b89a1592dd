package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"filechooser/internal/chooser"
	"filechooser/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewLsCmd lists a directory the way the picker would show it.
func NewLsCmd(current func() *config.Config) *cobra.Command {
	var (
		onlyDirs bool
		long     bool
	)

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory with the picker's filtering and ordering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := current()
			if cfg == nil {
				cfg = config.New()
			}

			dir := "."
			if len(args) == 1 {
				dir = config.ExpandHome(args[0])
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			lister, err := cfg.NewLister(nil)
			if err != nil {
				return err
			}
			mode := chooser.ModeFor(onlyDirs || cfg.Chooser.OnlyDirectories)
			entries, err := lister.ReadEntries(abs, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !long {
				for _, e := range entries {
					fmt.Fprintln(out, displayName(e))
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				size := "-"
				if !e.IsDir {
					size = humanize.Bytes(uint64(e.Size))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", size, humanize.Time(e.Modified), displayName(e))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&onlyDirs, "only-dirs", "d", false, "list directories only")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show size and modification time")

	return cmd
}

func displayName(e chooser.Entry) string {
	if e.IsDir {
		return e.Name + string(os.PathSeparator)
	}
	return e.Name
}
