package actions_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ghup.dev/ghup/internal/actions"
	ghuperrors "ghup.dev/ghup/internal/errors"
	"ghup.dev/ghup/internal/uploader"
	"ghup.dev/ghup/testhelpers"
)

func TestUploadFileAction(t *testing.T) {
	t.Run("uploads and prints the status line", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		res, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{
			LocalPath: filepath.Join(dir, "a.txt"),
			Prefix:    "docs",
		})

		require.NoError(t, err)
		require.True(t, res.OK())
		require.Equal(t, "✓ Uploaded a.txt → docs/a.txt\n", out.String())
		testhelpers.ExpectFileContent(t, server, "docs/a.txt", []byte("hello"))
	})

	t.Run("failure prints the API message and returns an incomplete upload", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["a.txt"] = http.StatusNotFound
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		res, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.False(t, res.OK())
		require.Equal(t, "✗ Failed to upload a.txt: Not Found (HTTP 404)\n", out.String())
	})

	t.Run("existing file suggests --overwrite", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.SetFile("a.txt", []byte("old"))
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("new")})

		_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.Contains(t, out.String(), "(HTTP 422)")
		require.Contains(t, out.String(), "--overwrite")
	})

	t.Run("conflict also suggests --overwrite", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["a.txt"] = http.StatusConflict
		server.Messages["a.txt"] = "a.txt already exists on gh-pages"
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("new")})

		_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.Contains(t, out.String(), "(HTTP 409)")
		require.Contains(t, out.String(), "Re-run with --overwrite")
	})

	t.Run("server errors do not suggest --overwrite", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["a.txt"] = http.StatusInternalServerError
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("new")})

		_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.NotContains(t, out.String(), "--overwrite")
	})

	t.Run("overwrite replaces the file", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.SetFile("a.txt", []byte("old"))
		cfg := testhelpers.NewMockConfig(t, server)
		cfg.Overwrite = true
		ctx, out := testhelpers.NewTestContext(t, cfg)
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("new")})

		res, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.NoError(t, err)
		require.Equal(t, uploader.ActionUpdated, res.Action)
		require.Equal(t, "✓ Updated a.txt → a.txt\n", out.String())
	})

	t.Run("open shows the uploaded file", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, _ := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		var opened []string
		ctx.OpenURL = func(_ context.Context, url string) error {
			opened = append(opened, url)
			return nil
		}
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		res, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{
			LocalPath: filepath.Join(dir, "a.txt"),
			Prefix:    "docs",
			Open:      true,
		})

		require.NoError(t, err)
		require.Equal(t, []string{"https://github.com/owner/repo/blob/main/docs/a.txt"}, opened)
		require.Equal(t, opened[0], res.HTMLURL)
	})

	t.Run("browser failure is only a warning", func(t *testing.T) {
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, nil))
		ctx.OpenURL = func(context.Context, string) error { return errors.New("no display") }
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt"), Open: true})

		require.NoError(t, err)
		require.Contains(t, out.String(), "no display")
	})

	t.Run("missing local file fails without a request", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))

		res, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(t.TempDir(), "missing.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.ErrorIs(t, res.Err, ghuperrors.ErrLocalIO)
		require.True(t, strings.HasPrefix(out.String(), "✗ Failed to upload missing.txt:"))
		require.Empty(t, server.Requests())
	})

	t.Run("missing configuration aborts before uploading", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		cfg := testhelpers.NewMockConfig(t, server)
		cfg.Owner = ""
		ctx, _ := testhelpers.NewTestContext(t, cfg)
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		_, err := actions.UploadFileAction(ctx, actions.UploadFileOptions{LocalPath: filepath.Join(dir, "a.txt")})

		require.ErrorIs(t, err, ghuperrors.ErrMissingConfig)
		require.Empty(t, server.Requests())
	})
}

func TestUploadDirectoryAction(t *testing.T) {
	t.Run("uploads the tree under the prefix", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{
			"a.txt":     []byte("a"),
			"sub/b.txt": []byte("b"),
		})

		summary, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{Dir: dir, Prefix: "docs"})

		require.NoError(t, err)
		require.True(t, summary.OK())
		require.Equal(t, strings.Join([]string{
			"✓ Uploaded a.txt → docs/a.txt",
			"✓ Uploaded b.txt → docs/sub/b.txt",
			"Uploaded 2 out of 2 files",
			"",
		}, "\n"), out.String())
		testhelpers.ExpectUploadedPaths(t, server, []string{"docs/a.txt", "docs/sub/b.txt"})
	})

	t.Run("partial failure reports every file and fails", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["b.txt"] = http.StatusConflict
		server.Messages["b.txt"] = "b.txt does not match"
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{
			"a.txt": []byte("a"),
			"b.txt": []byte("b"),
			"c.txt": []byte("c"),
		})

		summary, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{Dir: dir})

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		var incomplete *ghuperrors.IncompleteUploadError
		require.ErrorAs(t, err, &incomplete)
		require.Equal(t, 1, incomplete.Failed)
		require.Equal(t, 3, incomplete.Total)

		require.Equal(t, 2, summary.Succeeded)
		require.Contains(t, out.String(), "✗ Failed to upload b.txt: b.txt does not match (HTTP 409)")
		require.Contains(t, out.String(), "Uploaded 2 out of 3 files")
		require.Len(t, server.Requests(), 3)
	})

	t.Run("unreadable root is an error with nothing uploaded", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))

		_, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{Dir: filepath.Join(t.TempDir(), "missing")})

		require.ErrorIs(t, err, ghuperrors.ErrLocalIO)
		require.NotContains(t, out.String(), "Uploaded")
		require.Empty(t, server.Requests())
	})

	t.Run("empty directory succeeds", func(t *testing.T) {
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, nil))

		summary, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{Dir: t.TempDir()})

		require.NoError(t, err)
		require.Zero(t, summary.Total)
		require.Equal(t, "Uploaded 0 out of 0 files\n", out.String())
	})

	t.Run("concurrent uploads still report every file", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		cfg := testhelpers.NewMockConfig(t, server)
		cfg.Concurrency = 4
		ctx, out := testhelpers.NewTestContext(t, cfg)
		dir := t.TempDir()
		files := map[string][]byte{}
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			files["n/"+name+".txt"] = []byte(name)
		}
		testhelpers.WriteTree(t, dir, files)

		summary, err := actions.UploadDirectoryAction(ctx, actions.UploadDirectoryOptions{Dir: dir, Prefix: "p"})

		require.NoError(t, err)
		require.Equal(t, 8, summary.Succeeded)
		require.Equal(t, 8, strings.Count(out.String(), "✓ Uploaded"))
		require.Contains(t, out.String(), "Uploaded 8 out of 8 files")
	})
}
