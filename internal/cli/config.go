package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/exlogs/internal/config"
	"github.com/watchfire-io/exlogs/internal/models"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "Inspect and create the settings file",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings after applying defaults, the settings file, .env,
EXLOGS_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd, flags)
			if err != nil {
				return err
			}
			s, err := loader.Settings()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			out := cmd.OutOrStdout()
			source := loader.ConfigFile()
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintln(out, styleHint.Render("# source: "+source))
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(flags)
			if err != nil {
				return err
			}
			if config.FileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, models.NewSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("Wrote"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(pathCmd)
	configCmd.AddCommand(showCmd)
	return configCmd
}

func settingsPath(flags *globalFlags) (string, error) {
	if flags.configFile != "" {
		return flags.configFile, nil
	}
	return config.GlobalSettingsFile()
}
