// Package common provides shared helper functions for CLI commands.
package common

import (
	"os"

	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/config"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
)

// ConfigFlag names the persistent flag that selects a config file
const ConfigFlag = "config"

// GetContext resolves the configuration for cmd and builds a runtime context.
// The configuration is not validated here; commands that talk to GitHub
// validate it on first use of the contents client.
func GetContext(cmd *cobra.Command) (*runtime.Context, error) {
	configFile, _ := cmd.Flags().GetString(ConfigFlag)

	cfg, err := config.Load(cmd.Context(), config.LoadOptions{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	splog, err := tui.NewSplogWithWriter(out, tui.ResolveLogFilePath(cfg.LogFile), cfg.Debug)
	if err != nil {
		return nil, err
	}

	ctx := runtime.NewContext(cmd.Context(), cfg, splog)
	ctx.Animate = out == os.Stdout
	return ctx, nil
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := GetContext(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()

	return fn(ctx)
}
