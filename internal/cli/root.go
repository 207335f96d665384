// Package cli implements the exlogs CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/exlogs/internal/config"
	"github.com/watchfire-io/exlogs/internal/logging"
	"github.com/watchfire-io/exlogs/internal/tui"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	endpoint   string
	debug      bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "exlogs",
		Short: "Browse exception logs from the terminal",
		Long: `exlogs queries an exception-logs API and shows the results as a table.

Run without arguments in a terminal to open the interactive viewer, or use
'exlogs list' for one-shot output suitable for scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := logging.Options{Console: cmd.ErrOrStderr(), Debug: flags.debug}
			if !cmd.HasParent() && isTerminal(cmd.OutOrStdout()) {
				file, err := config.GlobalLogFile()
				if err != nil {
					return err
				}
				opts.File = file
			}
			closer, err := logging.Init(opts)
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd, &flags)
			if err != nil {
				return err
			}
			if !isTerminal(cmd.OutOrStdout()) {
				return runList(cmd, loader, &listOptions{})
			}
			log.Info().Str("component", "cli").Str("operation", "tui").Str("config", loader.ConfigFile()).Msg("Starting viewer")
			return tui.Run(loader)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "settings file (default ~/.exlogs/settings.yaml)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "exception-logs API endpoint")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(newConfigCmd(&flags))
	rootCmd.AddCommand(newListCmd(&flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// newLoader reads settings for cmd, letting --endpoint override the file.
func newLoader(cmd *cobra.Command, flags *globalFlags) (*config.Loader, error) {
	loader, err := config.NewLoader(config.Options{ConfigFile: flags.configFile})
	if err != nil {
		return nil, err
	}
	if err := loader.BindPFlag("endpoint", cmd.Root().PersistentFlags().Lookup("endpoint")); err != nil {
		return nil, err
	}
	return loader, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func printKV(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-12s", label+":")), styleValue.Render(value))
}
