package actions

import (
	"errors"
	"fmt"
	"strings"

	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
)

const (
	choiceFile      = "file"
	choiceDirectory = "directory"
)

// ErrNoPath is returned when the user leaves the local path empty
var ErrNoPath = errors.New("no path entered")

// InteractiveAction asks what to upload and where, then runs the matching upload
func InteractiveAction(ctx *runtime.Context) error {
	prompter := ctx.Prompter
	if prompter == nil {
		prompter = tui.TerminalPrompter{}
	}

	choice, err := prompter.Select("GitHub File Uploader", []tui.SelectOption{
		{Label: "Upload a single file", Value: choiceFile},
		{Label: "Upload a directory", Value: choiceDirectory},
	}, 0)
	if err != nil {
		return err
	}

	pathPrompt := "Enter the path to the file:"
	if choice == choiceDirectory {
		pathPrompt = "Enter the path to the directory:"
	}

	localPath, err := prompter.TextInput(pathPrompt, "", "")
	if err != nil {
		return err
	}
	localPath = strings.TrimSpace(localPath)
	if localPath == "" {
		return ErrNoPath
	}

	prefix, err := prompter.TextInput("Enter the target directory in repository:", "(leave empty for root)", "")
	if err != nil {
		return err
	}

	if ctx.Config != nil && !ctx.Config.Overwrite {
		overwrite, err := prompter.Confirm("Replace files that already exist in the repository?", false)
		if err != nil {
			return err
		}
		ctx.Config.Overwrite = overwrite
	}

	switch choice {
	case choiceFile:
		_, err = UploadFileAction(ctx, UploadFileOptions{LocalPath: localPath, Prefix: prefix})
	case choiceDirectory:
		_, err = UploadDirectoryAction(ctx, UploadDirectoryOptions{Dir: localPath, Prefix: prefix})
	default:
		err = fmt.Errorf("invalid choice %q", choice)
	}
	return err
}
