package uploader

import (
	"strings"
)

// NormalizePrefix turns a user supplied target directory into a clean,
// slash-separated repository path without leading or trailing slashes.
// An empty result means the repository root.
func NormalizePrefix(prefix string) string {
	prefix = strings.ReplaceAll(prefix, "\\", "/")

	parts := strings.Split(prefix, "/")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "." {
			continue
		}
		kept = append(kept, p)
	}

	return strings.Join(kept, "/")
}

// RemotePath returns prefix + "/" + name, or name alone when prefix is empty
func RemotePath(prefix, name string) string {
	prefix = NormalizePrefix(prefix)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// joinRemote appends a slash-separated path relative to the walk root to a
// user prefix. Only the prefix is normalized; the relative path is kept as
// found on disk.
func joinRemote(prefix, rel string) string {
	if p := NormalizePrefix(prefix); p != "" {
		return p + "/" + rel
	}
	return rel
}
