//go:build !linux && !darwin && !windows

package utils

import (
	"context"
	"os/exec"
)

// browserCommand falls back to xdg-open on other unixes
func browserCommand(ctx context.Context, url string) *exec.Cmd {
	return exec.CommandContext(ctx, "xdg-open", url)
}
