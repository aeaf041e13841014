package cli_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ghuperrors "ghup.dev/ghup/internal/errors"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/testhelpers"
)

func TestUploadFileCommand(t *testing.T) {
	t.Run("uploads into the prefix", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)
		testhelpers.WriteTree(t, dir, map[string][]byte{"report.pdf": testhelpers.BinaryFixture()})

		stdout, _, err := runCmd(t, "upload-file", "report.pdf", "--prefix", "/docs/")

		require.NoError(t, err)
		require.Equal(t, "✓ Uploaded report.pdf → docs/report.pdf\n", stdout)
		testhelpers.ExpectFileContent(t, server, "docs/report.pdf", testhelpers.BinaryFixture())
		require.Equal(t, "Upload report.pdf", server.Requests()[0].Message)
	})

	t.Run("flags override the environment", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)
		t.Setenv("GHUP_BRANCH", "main")
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("a")})

		_, _, err := runCmd(t, "upload-file", "a.txt", "--branch", "gh-pages", "-m", "publish {path}")

		require.NoError(t, err)
		reqs := server.Requests()
		require.Len(t, reqs, 1)
		require.Equal(t, "gh-pages", reqs[0].Branch)
		require.Equal(t, "publish a.txt", reqs[0].Message)
	})

	t.Run("remote failure exits with an error", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["a.txt"] = http.StatusUnauthorized
		server.Messages["a.txt"] = "Bad credentials"
		useMockServer(t, server)
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("a")})

		stdout, stderr, err := runCmd(t, "upload-file", "a.txt")

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.Contains(t, stdout, "✗ Failed to upload a.txt: Bad credentials (HTTP 401)")
		require.Contains(t, stderr, "Error:")
		require.NotContains(t, stderr, "Usage:")
	})

	t.Run("existing file is replaced with --overwrite", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		server.SetFile("a.txt", []byte("old"))
		useMockServer(t, server)
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("new")})

		stdout, _, err := runCmd(t, "upload-file", "a.txt", "--overwrite")

		require.NoError(t, err)
		require.Equal(t, "✓ Updated a.txt → a.txt\n", stdout)
		testhelpers.ExpectFileContent(t, server, "a.txt", []byte("new"))
	})

	t.Run("missing token is a configuration error", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)
		t.Setenv("GHUP_TOKEN", "")
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("a")})

		_, stderr, err := runCmd(t, "upload-file", "a.txt")

		require.ErrorIs(t, err, ghuperrors.ErrMissingConfig)
		require.Contains(t, stderr, "token")
		require.Empty(t, server.Requests())
	})

	t.Run("requires exactly one path", func(t *testing.T) {
		isolateEnv(t)

		_, _, err := runCmd(t, "upload-file")
		require.Error(t, err)

		_, _, err = runCmd(t, "upload-file", "a", "b")
		require.Error(t, err)
	})
}

func TestUploadDirectoryCommand(t *testing.T) {
	t.Run("uploads the documented example", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)
		data := filepath.Join(dir, "data")
		testhelpers.WriteTree(t, data, map[string][]byte{
			"a.txt":     []byte("a"),
			"sub/b.txt": []byte("b"),
		})

		stdout, _, err := runCmd(t, "upload-directory", data, "--prefix", "docs")

		require.NoError(t, err)
		require.Equal(t, strings.Join([]string{
			"✓ Uploaded a.txt → docs/a.txt",
			"✓ Uploaded b.txt → docs/sub/b.txt",
			"Uploaded 2 out of 2 files",
			"",
		}, "\n"), stdout)
		testhelpers.ExpectUploadedPaths(t, server, []string{"docs/a.txt", "docs/sub/b.txt"})
	})

	t.Run("excludes and concurrency from flags", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)
		testhelpers.WriteTree(t, dir, map[string][]byte{
			"site/index.html":   []byte("<html>"),
			"site/app.js":       []byte("js"),
			"site/app.js.map":   []byte("map"),
			"site/debug.log":    []byte("log"),
			"site/img/logo.png": testhelpers.BinaryFixture(),
		})

		stdout, _, err := runCmd(t, "upload-dir", "site",
			"--exclude", "**/*.map", "--exclude", "*.log", "-j", "3")

		require.NoError(t, err)
		require.Contains(t, stdout, "Uploaded 3 out of 3 files")
		testhelpers.ExpectUploadedPaths(t, server, []string{"app.js", "img/logo.png", "index.html"})
	})

	t.Run("partial failure uploads the rest and exits non-zero", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		server.Statuses["b.txt"] = http.StatusInternalServerError
		useMockServer(t, server)
		testhelpers.WriteTree(t, dir, map[string][]byte{
			"up/a.txt": []byte("a"),
			"up/b.txt": []byte("b"),
		})

		stdout, stderr, err := runCmd(t, "upload-directory", "up")

		require.ErrorIs(t, err, ghuperrors.ErrIncompleteUpload)
		require.Contains(t, stdout, "✓ Uploaded a.txt → a.txt")
		require.Contains(t, stdout, "✗ Failed to upload b.txt:")
		require.Contains(t, stdout, "Uploaded 1 out of 2 files")
		require.Contains(t, stderr, "1 of 2")
	})

	t.Run("missing directory", func(t *testing.T) {
		isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		useMockServer(t, server)

		_, _, err := runCmd(t, "upload-directory", "nope")

		require.ErrorIs(t, err, ghuperrors.ErrLocalIO)
		require.Empty(t, server.Requests())
	})

	t.Run("configuration from .env", func(t *testing.T) {
		dir := isolateEnv(t)
		server := testhelpers.NewMockGitHubServerConfig()
		server.Owner = "dotenv-owner"
		useMockServer(t, server)
		// .env never replaces a variable that is set, even to ""
		require.NoError(t, os.Unsetenv("GHUP_OWNER"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GHUP_OWNER=dotenv-owner\n"), 0600))
		testhelpers.WriteTree(t, dir, map[string][]byte{"up/a.txt": []byte("a")})

		_, _, err := runCmd(t, "upload-directory", "up")

		require.NoError(t, err)
		testhelpers.ExpectUploadedPaths(t, server, []string{"a.txt"})
	})
}

func TestInteractiveCommand(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCmd(t, "interactive")
	require.ErrorIs(t, err, tui.ErrInteractiveDisabled)
}
