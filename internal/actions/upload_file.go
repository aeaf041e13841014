package actions

import (
	"fmt"
	"net/http"

	ghuperrors "ghup.dev/ghup/internal/errors"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/internal/uploader"
)

// UploadFileOptions contains options for the upload-file command
type UploadFileOptions struct {
	LocalPath string
	// Prefix is the repository directory; empty means the repository root
	Prefix string
	// Open shows the uploaded file on GitHub afterwards
	Open bool
}

// UploadFileAction uploads a single file and reports the outcome
func UploadFileAction(ctx *runtime.Context, opts UploadFileOptions) (uploader.Result, error) {
	ui := tui.NewUploadUI(ctx.Splog, ctx.Animate)

	u, err := ctx.NewUploader(ui.FileDone)
	if err != nil {
		return uploader.Result{}, err
	}

	ui.Start(fmt.Sprintf("Uploading %s to %s", opts.LocalPath, describeTarget(ctx, opts.Prefix)))
	res := u.UploadFile(ctx.Context, opts.LocalPath, opts.Prefix)
	ui.Complete()

	if !res.OK() {
		tipOverwrite(ctx, []uploader.Result{res})
		return res, ghuperrors.NewIncompleteUploadError(1, 1)
	}

	if opts.Open && res.HTMLURL != "" && ctx.OpenURL != nil {
		if err := ctx.OpenURL(ctx.Context, res.HTMLURL); err != nil {
			ctx.Splog.Warn("Could not open %s: %v", res.HTMLURL, err)
		}
	}

	return res, nil
}

// describeTarget renders owner/repo[@branch]:prefix for progress output
func describeTarget(ctx *runtime.Context, prefix string) string {
	cfg := ctx.Config
	if cfg == nil {
		return uploader.NormalizePrefix(prefix)
	}

	target := cfg.Owner + "/" + cfg.Repo
	if cfg.Branch != "" {
		target += "@" + cfg.Branch
	}
	if p := uploader.NormalizePrefix(prefix); p != "" {
		target += ":" + p
	}
	return target
}

// tipOverwrite suggests --overwrite when files failed only because they already exist
func tipOverwrite(ctx *runtime.Context, results []uploader.Result) {
	if ctx.Config != nil && ctx.Config.Overwrite {
		return
	}

	existing := 0
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		switch res.Err.StatusCode {
		case http.StatusUnprocessableEntity, http.StatusConflict:
			existing++
		}
	}
	if existing > 0 {
		ctx.Splog.Tip("%d file(s) may already exist in the repository. Re-run with --overwrite to replace them.", existing)
	}
}
