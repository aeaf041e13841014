package runtime_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ghuperrors "ghup.dev/ghup/internal/errors"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/uploader"
	"ghup.dev/ghup/testhelpers"
)

func TestContextContents(t *testing.T) {
	t.Run("builds a client for the configured target", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		cfg := testhelpers.NewMockConfig(t, server)
		cfg.Branch = "gh-pages"
		ctx, _ := testhelpers.NewTestContext(t, cfg)

		contents, err := ctx.Contents()
		require.NoError(t, err)
		require.Contains(t, contents.ContentsURL("docs/a.txt"), "/repos/owner/repo/contents/docs/a.txt")

		again, err := ctx.Contents()
		require.NoError(t, err)
		require.Same(t, contents, again)
	})

	t.Run("invalid configuration is reported before any request", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		cfg := testhelpers.NewMockConfig(t, server)
		cfg.Token = ""
		ctx, _ := testhelpers.NewTestContext(t, cfg)

		_, err := ctx.Contents()
		require.ErrorIs(t, err, ghuperrors.ErrMissingConfig)

		_, err = ctx.NewUploader(nil)
		require.ErrorIs(t, err, ghuperrors.ErrMissingConfig)
		require.Empty(t, server.Requests())
	})

	t.Run("injected client skips configuration", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		contents := testhelpers.NewMockContentsClient(t, server, "")
		ctx := runtime.NewContext(context.Background(), nil, nil).WithContents(contents)

		got, err := ctx.Contents()
		require.NoError(t, err)
		require.Same(t, contents, got)
		require.NotNil(t, ctx.Splog)
	})
}

func TestContextNewUploader(t *testing.T) {
	server := testhelpers.NewMockGitHubServerConfig()
	cfg := testhelpers.NewMockConfig(t, server)
	cfg.Message = "docs: {path}"
	cfg.Branch = "main"
	ctx, _ := testhelpers.NewTestContext(t, cfg)

	dir := t.TempDir()
	testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("a")})

	var seen []uploader.Result
	u, err := ctx.NewUploader(func(r uploader.Result) { seen = append(seen, r) })
	require.NoError(t, err)

	res := u.UploadFile(context.Background(), filepath.Join(dir, "a.txt"), "site")
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	require.Len(t, seen, 1)

	reqs := server.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "docs: site/a.txt", reqs[0].Message)
	require.Equal(t, "main", reqs[0].Branch)
	require.Equal(t, "token "+testhelpers.TestToken, reqs[0].Authorization)
}
