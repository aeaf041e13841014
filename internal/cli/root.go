package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghup.dev/ghup/internal/cli/common"
	"ghup.dev/ghup/internal/config"
	ghclient "ghup.dev/ghup/internal/github"
	"ghup.dev/ghup/internal/uploader"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ghup",
		Short: "Upload files and directories to a GitHub repository",
		Long: `ghup uploads local files and directory trees to a GitHub repository through
the contents API, one commit per file.

Configuration comes from flags, GHUP_* environment variables, a .env file in the
working directory and ~/.config/ghup/config.yaml, in that order. The owner and
repository default to the origin remote of the current git repository.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	addConfigFlags(rootCmd)

	rootCmd.AddCommand(newUploadFileCmd())
	rootCmd.AddCommand(newUploadDirectoryCmd())
	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// addConfigFlags registers one persistent flag per configuration key
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(common.ConfigFlag, "", "Config file (default $XDG_CONFIG_HOME/ghup/config.yaml)")
	flags.String(config.FlagName(config.KeyToken), "", "GitHub token (default $GHUP_TOKEN, $GITHUB_TOKEN or the gh CLI login)")
	flags.String(config.FlagName(config.KeyOwner), "", "Repository owner (default from the origin remote)")
	flags.String(config.FlagName(config.KeyRepo), "", "Repository name (default from the origin remote)")
	flags.StringP(config.FlagName(config.KeyBranch), "b", "", "Branch to commit to (default: the repository's default branch)")
	flags.String(config.FlagName(config.KeyAPIURL), "", "GitHub API URL or GitHub Enterprise hostname (default "+ghclient.DefaultAPIURL+")")
	flags.IntP(config.FlagName(config.KeyConcurrency), "j", 1, "Number of files uploaded at the same time")
	flags.Duration(config.FlagName(config.KeyTimeout), ghclient.DefaultTimeout, "Timeout for each API request")
	flags.StringP(config.FlagName(config.KeyMessage), "m", uploader.DefaultMessage, "Commit message; {name} is the file name and {path} the repository path")
	flags.Bool(config.FlagName(config.KeyOverwrite), false, "Replace files that already exist in the repository")
	flags.StringSlice(config.FlagName(config.KeyExclude), nil, "Glob pattern of files to skip, relative to the uploaded directory (repeatable)")
	flags.String(config.FlagName(config.KeyLogFile), "", "Write a debug log to this file (\"default\" for ~/.ghup/logs/ghup.log)")
	flags.Bool(config.FlagName(config.KeyDebug), false, "Print debug output")
}
