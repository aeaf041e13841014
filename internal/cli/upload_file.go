package cli

import (
	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/actions"
	"ghup.dev/ghup/internal/cli/common"
	"ghup.dev/ghup/internal/runtime"
)

// newUploadFileCmd creates the upload-file command
func newUploadFileCmd() *cobra.Command {
	var (
		prefix string
		open   bool
	)

	cmd := &cobra.Command{
		Use:   "upload-file <path>",
		Short: "Upload a single file",
		Long: `Upload a single local file to the repository.

The file is stored as <prefix>/<file name>, or at the repository root when no
prefix is given. Existing files are left alone unless --overwrite is set.`,
		Example: `  ghup upload-file report.pdf
  ghup upload-file build/index.html --prefix site --branch gh-pages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{
					LocalPath: args[0],
					Prefix:    prefix,
					Open:      open,
				})
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Repository directory to upload into (default: the repository root)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the uploaded file on GitHub in the browser")

	return cmd
}
