package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/cli/common"
	"ghup.dev/ghup/internal/config"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Long: `Show the effective configuration or write a commented config file.

Examples:
  ghup config show
  ghup config show --owner acme --repo site
  ghup config init
  ghup config init --path ./ghup.yaml --force`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

// newConfigShowCmd creates the config show command
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with the token redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				out, err := ctx.Config.Render()
				if err != nil {
					return err
				}

				source := ctx.Config.ConfigFile
				if source == "" {
					source = "none"
				}
				ctx.Splog.Info("# config file: %s", source)
				if ctx.Config.RemoteDetected {
					ctx.Splog.Info("# owner/repo detected from the origin remote")
				}
				ctx.Splog.Page(out)

				if err := ctx.Config.Validate(); err != nil {
					ctx.Splog.Warn("%v", err)
				}
				return nil
			})
		},
	}
}

// newConfigInitCmd creates the config init command
func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if err := config.WriteTemplate(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to replace it)", err)
				}
				return err
			}

			splog, err := tui.NewSplogWithWriter(cmd.OutOrStdout(), "", false)
			if err != nil {
				return err
			}
			splog.Info("Wrote %s", tui.ColorPath(path))
			splog.Tip("Set GHUP_TOKEN or run `gh auth login` rather than storing the token in the file.")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default $XDG_CONFIG_HOME/ghup/config.yaml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file")

	return cmd
}
