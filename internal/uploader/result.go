package uploader

import (
	ghuperrors "ghup.dev/ghup/internal/errors"
)

// Action describes what happened to the remote file
type Action string

const (
	// ActionCreated means a new file was committed
	ActionCreated Action = "created"
	// ActionUpdated means an existing file was replaced
	ActionUpdated Action = "updated"
	// ActionUnchanged means the remote file already had identical content
	ActionUnchanged Action = "unchanged"
)

// Result is the outcome of uploading a single file
type Result struct {
	LocalPath  string
	RemotePath string
	Action     Action
	CommitSHA  string
	// HTMLURL is the file's page on GitHub; empty for unchanged files
	HTMLURL string
	Err     *ghuperrors.UploadError
}

// OK reports whether the file was uploaded (or already up to date)
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary is the aggregate outcome of a directory upload
type Summary struct {
	Root       string
	Prefix     string
	Results    []Result
	Succeeded  int
	Total      int
	WalkErrors []*ghuperrors.UploadError
}

// OK is true only if every file succeeded and the whole tree could be read
func (s Summary) OK() bool {
	return s.Succeeded == s.Total && len(s.WalkErrors) == 0
}

// Failed returns the results of files that could not be uploaded
func (s Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Count returns how many results ended with the given action
func (s Summary) Count(action Action) int {
	n := 0
	for _, r := range s.Results {
		if r.OK() && r.Action == action {
			n++
		}
	}
	return n
}

func (s *Summary) tally() {
	s.Total = len(s.Results)
	s.Succeeded = 0
	for _, r := range s.Results {
		if r.OK() {
			s.Succeeded++
		}
	}
}
