package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"

	ghuperrors "ghup.dev/ghup/internal/errors"
)

// Target identifies the repository (and optionally the branch) files are committed to
type Target struct {
	Owner  string
	Repo   string
	Branch string
}

// FileRequest describes one commit of one file
type FileRequest struct {
	Path    string
	Message string
	Content []byte
	// SHA is the blob SHA of the file being replaced; empty for creates
	SHA string
}

// FileCommit is the outcome of a successful create or update
type FileCommit struct {
	Path       string
	BlobSHA    string
	CommitSHA  string
	HTMLURL    string
	StatusCode int
}

// ContentsAPI is the subset of the contents API the uploader needs
type ContentsAPI interface {
	// CreateFile commits a new file
	CreateFile(ctx context.Context, req FileRequest) (*FileCommit, error)

	// UpdateFile replaces an existing file identified by req.SHA
	UpdateFile(ctx context.Context, req FileRequest) (*FileCommit, error)

	// GetFileSHA returns the blob SHA of an existing file, or "" if it does not exist
	GetFileSHA(ctx context.Context, path string) (string, error)

	// ContentsURL returns the endpoint used for the given repository path
	ContentsURL(path string) string
}

// ContentsClient implements ContentsAPI on top of go-github
type ContentsClient struct {
	client *github.Client
	target Target
}

// Ensure interface compliance.
var _ ContentsAPI = (*ContentsClient)(nil)

// NewContentsClient creates a ContentsClient for the given repository
func NewContentsClient(client *github.Client, target Target) *ContentsClient {
	return &ContentsClient{
		client: client,
		target: target,
	}
}

// Target returns the repository this client writes to
func (c *ContentsClient) Target() Target {
	return c.target
}

// BaseURL returns the contents endpoint of the target repository
func (c *ContentsClient) BaseURL() string {
	return fmt.Sprintf("%srepos/%s/%s/contents", c.client.BaseURL.String(), c.target.Owner, c.target.Repo)
}

// ContentsURL returns the endpoint used for the given repository path
func (c *ContentsClient) ContentsURL(path string) string {
	return c.BaseURL() + "/" + escapePath(path)
}

// CreateFile commits a new file
func (c *ContentsClient) CreateFile(ctx context.Context, req FileRequest) (*FileCommit, error) {
	opts := c.fileOptions(req)
	opts.SHA = nil

	res, resp, err := c.client.Repositories.CreateFile(ctx, c.target.Owner, c.target.Repo, escapePath(req.Path), opts)
	if err := classifyResponse(req.Path, resp, err); err != nil {
		return nil, err
	}

	return toFileCommit(req.Path, res, resp), nil
}

// UpdateFile replaces an existing file identified by req.SHA
func (c *ContentsClient) UpdateFile(ctx context.Context, req FileRequest) (*FileCommit, error) {
	if req.SHA == "" {
		return nil, fmt.Errorf("updating %s: blob SHA is required", req.Path)
	}

	res, resp, err := c.client.Repositories.UpdateFile(ctx, c.target.Owner, c.target.Repo, escapePath(req.Path), c.fileOptions(req))
	if err := classifyResponse(req.Path, resp, err); err != nil {
		return nil, err
	}

	return toFileCommit(req.Path, res, resp), nil
}

// GetFileSHA returns the blob SHA of an existing file, or "" if it does not exist
func (c *ContentsClient) GetFileSHA(ctx context.Context, path string) (string, error) {
	var opts *github.RepositoryContentGetOptions
	if c.target.Branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: c.target.Branch}
	}

	file, dir, resp, err := c.client.Repositories.GetContents(ctx, c.target.Owner, c.target.Repo, path, opts)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", classifyResponse(path, resp, err)
	}

	if file == nil {
		if dir != nil {
			return "", ghuperrors.NewRemoteAPIError(path, http.StatusOK, "path is a directory", nil)
		}
		return "", nil
	}

	return file.GetSHA(), nil
}

func (c *ContentsClient) fileOptions(req FileRequest) *github.RepositoryContentFileOptions {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(req.Message),
		Content: req.Content,
	}
	if req.SHA != "" {
		opts.SHA = github.String(req.SHA)
	}
	if c.target.Branch != "" {
		opts.Branch = github.String(c.target.Branch)
	}
	return opts
}

func toFileCommit(path string, res *github.RepositoryContentResponse, resp *github.Response) *FileCommit {
	commit := &FileCommit{Path: path}
	if resp != nil {
		commit.StatusCode = resp.StatusCode
	}
	if res == nil {
		return commit
	}
	if res.Content != nil {
		commit.BlobSHA = res.Content.GetSHA()
		commit.HTMLURL = res.Content.GetHTMLURL()
	}
	commit.CommitSHA = res.Commit.GetSHA()
	return commit
}

// classifyResponse converts a go-github call outcome into an UploadError.
// Only 200 and 201 count as success.
func classifyResponse(path string, resp *github.Response, err error) error {
	if err == nil {
		if resp == nil || resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			return nil
		}
		return ghuperrors.NewRemoteAPIError(path, resp.StatusCode, http.StatusText(resp.StatusCode), nil)
	}

	var (
		rateErr     *github.RateLimitError
		abuseErr    *github.AbuseRateLimitError
		errResp     *github.ErrorResponse
		acceptedErr *github.AcceptedError
	)

	switch {
	case errors.As(err, &rateErr):
		return ghuperrors.NewRemoteAPIError(path, statusOf(rateErr.Response), rateErr.Message, err)
	case errors.As(err, &abuseErr):
		return ghuperrors.NewRemoteAPIError(path, statusOf(abuseErr.Response), abuseErr.Message, err)
	case errors.As(err, &errResp):
		return ghuperrors.NewRemoteAPIError(path, statusOf(errResp.Response), errResp.Message, err)
	case errors.As(err, &acceptedErr):
		return ghuperrors.NewRemoteAPIError(path, http.StatusAccepted, "request accepted but not completed", err)
	}

	return ghuperrors.NewNetworkError(path, err)
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// escapePath escapes each segment of a repository path so that characters
// such as '#' or '?' survive URL construction.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
