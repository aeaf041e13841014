//go:build linux

package utils

import (
	"context"
	"os/exec"
)

// browserCommand runs xdg-open on Linux
func browserCommand(ctx context.Context, url string) *exec.Cmd {
	return exec.CommandContext(ctx, "xdg-open", url)
}
