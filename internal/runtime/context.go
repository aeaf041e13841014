package runtime

import (
	"context"
	"fmt"

	"ghup.dev/ghup/internal/config"
	ghclient "ghup.dev/ghup/internal/github"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/internal/uploader"
	"ghup.dev/ghup/internal/utils"
)

// Context provides access to configuration, output and the API client for commands
type Context struct {
	Context  context.Context
	Splog    *tui.Splog
	Config   *config.Config
	Prompter tui.Prompter

	// Animate enables the bubbletea progress display when attached to a terminal
	Animate bool

	// OpenURL shows a page in the browser
	OpenURL func(ctx context.Context, url string) error

	contents ghclient.ContentsAPI
}

// NewContext creates a new context for the given configuration
func NewContext(ctx context.Context, cfg *config.Config, splog *tui.Splog) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Context:  ctx,
		Splog:    splog,
		Config:   cfg,
		Prompter: tui.TerminalPrompter{},
		OpenURL:  utils.OpenURL,
	}
}

// WithContents sets the contents client, replacing the one built from the configuration
func (c *Context) WithContents(contents ghclient.ContentsAPI) *Context {
	c.contents = contents
	return c
}

// Contents returns the contents API client, creating it on first use.
// The configuration is validated before a client is created.
func (c *Context) Contents() (ghclient.ContentsAPI, error) {
	if c.contents != nil {
		return c.contents, nil
	}

	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	client, err := ghclient.NewClient(c.Context, c.Config.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	contents := ghclient.NewContentsClient(client, c.Config.Target())
	c.Splog.Debug("Contents endpoint: %s", contents.BaseURL())

	c.contents = contents
	return c.contents, nil
}

// NewUploader creates an uploader from the configuration that reports each
// finished file to onResult
func (c *Context) NewUploader(onResult func(uploader.Result)) (*uploader.Uploader, error) {
	contents, err := c.Contents()
	if err != nil {
		return nil, err
	}

	opts := c.Config.UploaderOptions()
	opts.OnResult = onResult
	opts.Log = c.Splog

	return uploader.New(contents, opts), nil
}
