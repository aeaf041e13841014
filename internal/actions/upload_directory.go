package actions

import (
	"fmt"

	ghuperrors "ghup.dev/ghup/internal/errors"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/internal/uploader"
)

// UploadDirectoryOptions contains options for the upload-directory command
type UploadDirectoryOptions struct {
	Dir string
	// Prefix is the repository directory the tree is placed under
	Prefix string
}

// UploadDirectoryAction uploads every file below a directory, preserving its
// structure, and reports each file plus a closing summary
func UploadDirectoryAction(ctx *runtime.Context, opts UploadDirectoryOptions) (uploader.Summary, error) {
	ui := tui.NewUploadUI(ctx.Splog, ctx.Animate)

	u, err := ctx.NewUploader(ui.FileDone)
	if err != nil {
		return uploader.Summary{}, err
	}

	ui.Start(fmt.Sprintf("Uploading %s to %s", opts.Dir, describeTarget(ctx, opts.Prefix)))
	summary := u.UploadDirectory(ctx.Context, opts.Dir, opts.Prefix)

	// Nothing could be read at all
	if summary.Total == 0 && len(summary.WalkErrors) > 0 {
		ui.Complete()
		return summary, fmt.Errorf("cannot upload directory: %w", summary.WalkErrors[0])
	}

	ui.CompleteWithSummary(summary.Succeeded, summary.Total)

	for _, walkErr := range summary.WalkErrors {
		ctx.Splog.Warn("Skipped unreadable entry %s", walkErr.Error())
	}

	if unchanged := summary.Count(uploader.ActionUnchanged); unchanged > 0 {
		ctx.Splog.Debug("%d file(s) were already up to date", unchanged)
	}

	if !summary.OK() {
		tipOverwrite(ctx, summary.Failed())
		failed := summary.Total - summary.Succeeded + len(summary.WalkErrors)
		return summary, ghuperrors.NewIncompleteUploadError(failed, summary.Total+len(summary.WalkErrors))
	}

	return summary, nil
}
