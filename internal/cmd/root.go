package cmd

import (
	"fmt"
	"os"

	"filechooser/internal/chooser"
	"filechooser/internal/config"
	"filechooser/internal/errors"
	"filechooser/internal/gui"
	"filechooser/internal/log"
	"filechooser/internal/tui"

	"github.com/spf13/cobra"
)

// ErrCancelled is returned by the root command when the picker closes
// without a choice.
var ErrCancelled = errors.New("selection cancelled")

// Runner shows a dialog and blocks until it resolves.
type Runner func(d *chooser.Dialog, cfg *config.Config) (chooser.Result, error)

type rootOptions struct {
	cfgFile     string
	onlyDirs    bool
	base        string
	debug       bool
	showHidden  bool
	pattern     string
	acceptLabel string
	cancelLabel string
	title       string
	gui         bool
}

// NewRootCmd creates the root command. The terminal and desktop runners are
// injected so the command tree can run headless.
func NewRootCmd(version string, terminal, desktop Runner) *cobra.Command {
	opts := &rootOptions{}
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:   "filechooser",
		Short: "Pick a file or directory and print its path",
		Long: `filechooser opens a modal picker on the terminal (or a desktop window
with --gui). The accepted path is printed on stdout; cancelling exits
with status 1.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			setupLogging(cfg, opts.debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, cfg, opts); err != nil {
				return err
			}

			lister, err := cfg.NewLister(nil)
			if err != nil {
				return err
			}
			d := chooser.NewDialog(chooser.NewState(nil), lister, cfg.DialogOptions(), nil)
			log.LogWithFields(log.F("dialog", d.ID()), log.F("mode", d.State().Mode().String())).Debug("opening picker")

			run := terminal
			if opts.gui {
				if !gui.IsGUIAvailable() {
					return errors.New("this build has no GUI support")
				}
				run = desktop
			}

			res, err := run(d, cfg)
			if err != nil {
				return err
			}
			if !res.Accepted {
				return ErrCancelled
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.onlyDirs, "only-dirs", "d", false, "pick a directory instead of a file")
	flags.StringVarP(&opts.base, "base", "b", "", "directory to start in (default is the working directory)")
	flags.BoolVar(&opts.showHidden, "show-hidden", true, "list dot-files and dot-directories")
	flags.StringVar(&opts.pattern, "pattern", "", "only list files matching this glob")
	flags.StringVar(&opts.acceptLabel, "accept-label", "", "label of the accept button")
	flags.StringVar(&opts.cancelLabel, "cancel-label", "", "label of the cancel button")
	flags.StringVar(&opts.title, "title", "", "dialog title")
	flags.BoolVar(&opts.gui, "gui", false, "open a desktop window instead of the terminal picker")

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/filechooser/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewLsCmd(func() *config.Config { return cfg }))
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// Execute runs the picker with the terminal and desktop frontends.
func Execute(version string) error {
	return NewRootCmd(version, tui.Run, gui.Run).Execute()
}

// loadConfig falls back to defaults when the file is unreadable, the way a
// picker launched from a script should.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadConfigFile(path)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.LogWithError(err).Warn("using default settings")
		return config.New(), nil
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config, debug bool) {
	// stdout carries the chosen path
	logOpts := []log.Option{log.WithOutput(os.Stderr)}
	if cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if cfg.Logging.File != "" {
		logOpts = append(logOpts, log.WithFile(config.ExpandHome(cfg.Logging.File)))
	}
	log.Configure(logOpts...)
	log.SetDebug(debug || cfg.Logging.Debug)
}

// applyFlags overrides file settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) error {
	flags := cmd.Flags()
	if flags.Changed("only-dirs") {
		cfg.Chooser.OnlyDirectories = opts.onlyDirs
	}
	if flags.Changed("base") {
		cfg.Chooser.BaseDirectory = opts.base
	}
	if flags.Changed("show-hidden") {
		cfg.Chooser.ShowHidden = opts.showHidden
	}
	if flags.Changed("pattern") {
		cfg.Chooser.Pattern = opts.pattern
	}
	if flags.Changed("accept-label") {
		cfg.Labels.Accept = opts.acceptLabel
	}
	if flags.Changed("cancel-label") {
		cfg.Labels.Cancel = opts.cancelLabel
	}
	if flags.Changed("title") {
		cfg.Labels.Title = opts.title
	}
	return cfg.Validate()
}
