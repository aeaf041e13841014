// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a ghup command (upload-file, upload-directory,
// interactive) and orchestrates the uploader, configuration and terminal output.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Config, Splog and the API client
//   - Per-file failures are reported as they happen and never stop a batch
//   - An incomplete upload is returned as ErrIncompleteUpload so the command exits non-zero
//
// Dependencies:
//   - uploader: File and directory uploads
//   - tui: User interface and prompts
package actions
