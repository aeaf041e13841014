package cli

import (
	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/actions"
	"ghup.dev/ghup/internal/cli/common"
	"ghup.dev/ghup/internal/tui"
)

// newInteractiveCmd creates the interactive command
func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Choose what to upload from a menu",
		Long: `Pick a file or directory to upload, and where to put it, from prompts.
Requires a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tui.CheckInteractiveAllowed(); err != nil {
				return err
			}

			return common.Run(cmd, actions.InteractiveAction)
		},
	}

	return cmd
}
