// Package github provides a client for the GitHub repository contents API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIURL is the REST endpoint for github.com
	DefaultAPIURL = "https://api.github.com/"

	// DefaultTimeout bounds every HTTP request made by the client
	DefaultTimeout = 30 * time.Second
)

// ClientOptions configures an authenticated GitHub client
type ClientOptions struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a GitHub client with authentication.
// BaseURL may be a full API URL or a bare enterprise hostname.
func NewClient(ctx context.Context, opts ClientOptions) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token, TokenType: "token"},
	)
	tc := oauth2.NewClient(ctx, ts)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tc.Timeout = timeout

	client := github.NewClient(tc)

	if opts.BaseURL == "" || opts.BaseURL == DefaultAPIURL {
		return client, nil
	}

	baseURL, err := ResolveAPIURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, nil
}

// ResolveAPIURL turns a configured API location into a base URL with a trailing slash.
// A bare hostname such as "github.company.com" maps to the GitHub Enterprise
// REST endpoint https://github.company.com/api/v3/.
func ResolveAPIURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return url.Parse(DefaultAPIURL)
	}

	if !strings.Contains(raw, "://") {
		if raw == "github.com" {
			return url.Parse(DefaultAPIURL)
		}
		raw = fmt.Sprintf("https://%s/api/v3/", strings.TrimSuffix(raw, "/"))
	}

	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API URL %q: %w", raw, err)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("API URL %q has no host", raw)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	return baseURL, nil
}
