package uploader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ghuperrors "ghup.dev/ghup/internal/errors"
)

// fileTask is one file found below the walk root
type fileTask struct {
	localPath  string
	remotePath string
}

// ValidatePatterns checks that every exclude pattern is a valid doublestar glob
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// matchesAny reports whether a slash-separated relative path matches one of
// the patterns. Patterns without a slash also match the base name at any depth.
func matchesAny(patterns []string, relPath string) bool {
	base := path.Base(relPath)
	for _, pattern := range patterns {
		if match, err := doublestar.Match(pattern, relPath); err == nil && match {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if match, err := doublestar.Match(pattern, base); err == nil && match {
				return true
			}
		}
	}
	return false
}

// collect walks root and returns every uploadable file in lexical order.
// Unreadable entries are returned as walk errors; the walk carries on past them.
func collect(root, prefix string, exclude []string) ([]fileTask, []*ghuperrors.UploadError) {
	var walkErrs []*ghuperrors.UploadError

	info, err := os.Stat(root)
	if err != nil {
		return nil, append(walkErrs, ghuperrors.NewLocalIOError(root, err))
	}
	if !info.IsDir() {
		return nil, append(walkErrs, ghuperrors.NewLocalIOError(root, fmt.Errorf("not a directory")))
	}

	// A symlinked root is followed; symlinked subdirectories are not.
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}

	var tasks []fileTask

	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			walkErrs = append(walkErrs, ghuperrors.NewLocalIOError(p, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			walkErrs = append(walkErrs, ghuperrors.NewLocalIOError(p, err))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !isRegularFile(p, d) {
			return nil
		}

		tasks = append(tasks, fileTask{
			localPath:  p,
			remotePath: joinRemote(prefix, rel),
		})
		return nil
	})

	return tasks, walkErrs
}

// isRegularFile accepts regular files and symlinks that do not resolve to a
// directory. A dangling link is accepted so that its read failure is reported.
func isRegularFile(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	if err != nil {
		return true
	}
	return info.Mode().IsRegular()
}
