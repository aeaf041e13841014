// Package uploader commits local files and directory trees to a repository,
// one contents API request per file.
//
// Every file is attempted independently: a failure is recorded in the file's
// Result and never stops the rest of a directory upload.
package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/sync/errgroup"

	ghuperrors "ghup.dev/ghup/internal/errors"
	ghclient "ghup.dev/ghup/internal/github"
)

// DefaultMessage is the commit message template; {name} is the file's base
// name and {path} its repository path.
const DefaultMessage = "Upload {name}"

// Logger receives debug output
type Logger interface {
	Debug(format string, args ...interface{})
}

// Options configures an Uploader
type Options struct {
	// Message is the commit message template
	Message string
	// Overwrite replaces existing files instead of failing on them
	Overwrite bool
	// Concurrency bounds parallel uploads in UploadDirectory; 1 is sequential
	Concurrency int
	// Exclude holds doublestar patterns matched against paths relative to the walk root
	Exclude []string
	// OnResult is called once per finished file. Calls are serialised.
	OnResult func(Result)
	// Log receives debug output when set
	Log Logger
}

// Uploader commits local files through a ContentsAPI
type Uploader struct {
	client ghclient.ContentsAPI
	opts   Options
	mu     sync.Mutex
}

// New creates an Uploader. No validation is performed on the options.
func New(client ghclient.ContentsAPI, opts Options) *Uploader {
	if opts.Message == "" {
		opts.Message = DefaultMessage
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Uploader{
		client: client,
		opts:   opts,
	}
}

// UploadFile commits one local file as prefix/base(localPath).
// Failures are returned in the Result; nothing is propagated.
func (u *Uploader) UploadFile(ctx context.Context, localPath, prefix string) Result {
	return u.upload(ctx, localPath, RemotePath(prefix, filepath.Base(localPath)))
}

func (u *Uploader) upload(ctx context.Context, localPath, remotePath string) Result {
	res := u.uploadFile(ctx, localPath, remotePath)
	u.report(res)
	return res
}

// UploadDirectory commits every file below dir, preserving the directory
// structure under prefix. All files are attempted even if some fail.
func (u *Uploader) UploadDirectory(ctx context.Context, dir, prefix string) Summary {
	summary := Summary{
		Root:   dir,
		Prefix: NormalizePrefix(prefix),
	}

	tasks, walkErrs := collect(dir, prefix, u.opts.Exclude)
	summary.WalkErrors = walkErrs
	summary.Results = make([]Result, len(tasks))

	u.debug("Found %d files below %s (%d unreadable entries)", len(tasks), dir, len(walkErrs))

	g := new(errgroup.Group)
	g.SetLimit(u.opts.Concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			summary.Results[i] = u.upload(ctx, task.localPath, task.remotePath)
			return nil
		})
	}
	_ = g.Wait()

	summary.tally()
	return summary
}

func (u *Uploader) uploadFile(ctx context.Context, localPath, remotePath string) Result {
	name := filepath.Base(localPath)
	res := Result{
		LocalPath:  localPath,
		RemotePath: remotePath,
	}

	if err := ctx.Err(); err != nil {
		res.Err = ghuperrors.NewNetworkError(res.RemotePath, err)
		return res
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		res.Err = ghuperrors.NewLocalIOError(localPath, err)
		return res
	}
	if content == nil {
		content = []byte{}
	}

	req := ghclient.FileRequest{
		Path:    res.RemotePath,
		Message: u.message(name, res.RemotePath),
		Content: content,
	}

	u.debug("PUT %s (%d bytes)", u.client.ContentsURL(req.Path), len(content))

	if u.opts.Overwrite {
		sha, err := u.client.GetFileSHA(ctx, req.Path)
		if err != nil {
			res.Err = toUploadError(req.Path, err)
			return res
		}
		if sha != "" {
			if sha == BlobSHA(content) {
				res.Action = ActionUnchanged
				return res
			}
			req.SHA = sha
			commit, err := u.client.UpdateFile(ctx, req)
			if err != nil {
				res.Err = toUploadError(req.Path, err)
				return res
			}
			res.Action = ActionUpdated
			res.CommitSHA = commit.CommitSHA
			res.HTMLURL = commit.HTMLURL
			return res
		}
	}

	commit, err := u.client.CreateFile(ctx, req)
	if err != nil {
		res.Err = toUploadError(req.Path, err)
		return res
	}
	res.Action = ActionCreated
	res.CommitSHA = commit.CommitSHA
	res.HTMLURL = commit.HTMLURL
	return res
}

func (u *Uploader) message(name, remotePath string) string {
	return strings.NewReplacer("{name}", name, "{path}", remotePath).Replace(u.opts.Message)
}

func (u *Uploader) report(res Result) {
	if u.opts.OnResult == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.opts.OnResult(res)
}

func (u *Uploader) debug(format string, args ...interface{}) {
	if u.opts.Log != nil {
		u.opts.Log.Debug(format, args...)
	}
}

// BlobSHA returns the git blob id of content, as reported by the contents API
func BlobSHA(content []byte) string {
	return plumbing.ComputeHash(plumbing.BlobObject, content).String()
}

func toUploadError(path string, err error) *ghuperrors.UploadError {
	var ue *ghuperrors.UploadError
	if errors.As(err, &ue) {
		return ue
	}
	return ghuperrors.NewNetworkError(path, err)
}
