package cli

import (
	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/actions"
	"ghup.dev/ghup/internal/cli/common"
	"ghup.dev/ghup/internal/runtime"
)

// newUploadDirectoryCmd creates the upload-directory command
func newUploadDirectoryCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:     "upload-directory <dir>",
		Aliases: []string{"upload-dir"},
		Short:   "Upload every file under a directory",
		Long: `Upload every regular file under a local directory, keeping the directory
structure below the prefix. Each file is its own commit.

Files that fail are reported and the remaining files are still uploaded. The
command exits non-zero if any file failed.`,
		Example: `  ghup upload-directory ./public --prefix docs
  ghup upload-directory ./dist --exclude '**/*.map' --concurrency 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{
					Dir:    args[0],
					Prefix: prefix,
				})
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Repository directory to upload into (default: the repository root)")

	return cmd
}
