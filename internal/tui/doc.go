// Package tui provides the terminal user interface for ghup.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging and status reporting (Splog)
//   - Upload progress, animated on a terminal and line-by-line otherwise
//   - Terminal styling and colors (using lipgloss)
package tui
