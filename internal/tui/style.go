package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"ghup.dev/ghup/internal/uploader"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// ColorRed colors text red
func ColorRed(text string) string {
	return failureStyle.Render(text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return successStyle.Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorPath colors a file or repository path
func ColorPath(text string) string {
	return pathStyle.Render(text)
}

func actionVerb(action uploader.Action) string {
	switch action {
	case uploader.ActionUpdated:
		return "Updated"
	case uploader.ActionUnchanged:
		return "Unchanged"
	default:
		return "Uploaded"
	}
}

// FormatResult renders the status line of one file:
//
//	✓ Uploaded a.txt → docs/a.txt
//	✗ Failed to upload a.txt: Not Found (HTTP 404)
func FormatResult(res uploader.Result) string {
	name := filepath.Base(res.LocalPath)
	if !res.OK() {
		return fmt.Sprintf("%s Failed to upload %s: %s", ColorRed("✗"), name, res.Err.Reason())
	}

	icon := ColorGreen("✓")
	if res.Action == uploader.ActionUnchanged {
		icon = ColorDim("✓")
	}
	return fmt.Sprintf("%s %s %s → %s", icon, actionVerb(res.Action), name, ColorPath(res.RemotePath))
}

// FormatSummary renders the closing line of a directory upload
func FormatSummary(succeeded, total int) string {
	line := fmt.Sprintf("Uploaded %d out of %d files", succeeded, total)
	if succeeded == total {
		return ColorGreen(line)
	}
	return ColorRed(line)
}
