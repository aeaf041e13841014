//go:build windows

package utils

import (
	"context"
	"os/exec"
)

// browserCommand hands the URL to the default protocol handler on Windows
func browserCommand(ctx context.Context, url string) *exec.Cmd {
	return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
}
