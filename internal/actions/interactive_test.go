package actions_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ghup.dev/ghup/internal/actions"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/testhelpers"
)

func TestInteractiveAction(t *testing.T) {
	t.Run("uploads a single file", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, out := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("hello")})

		prompter := &testhelpers.ScriptedPrompter{
			Selections: []string{"file"},
			Inputs:     []string{filepath.Join(dir, "a.txt"), "docs"},
			Confirms:   []bool{false},
		}
		ctx.Prompter = prompter

		require.NoError(t, actions.InteractiveAction(ctx))

		require.Equal(t, []string{
			"GitHub File Uploader",
			"Enter the path to the file:",
			"Enter the target directory in repository:",
			"Replace files that already exist in the repository?",
		}, prompter.Asked)
		require.Equal(t, "✓ Uploaded a.txt → docs/a.txt\n", out.String())
	})

	t.Run("uploads a directory with overwrite confirmed", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		server.SetFile("site/a.txt", []byte("old"))
		cfg := testhelpers.NewMockConfig(t, server)
		ctx, out := testhelpers.NewTestContext(t, cfg)
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{
			"a.txt":     []byte("new"),
			"sub/b.txt": []byte("b"),
		})

		ctx.Prompter = &testhelpers.ScriptedPrompter{
			Selections: []string{"directory"},
			Inputs:     []string{dir, "site"},
			Confirms:   []bool{true},
		}

		require.NoError(t, actions.InteractiveAction(ctx))

		require.True(t, cfg.Overwrite)
		require.Contains(t, out.String(), "✓ Updated a.txt → site/a.txt")
		require.Contains(t, out.String(), "✓ Uploaded b.txt → site/sub/b.txt")
		require.Contains(t, out.String(), "Uploaded 2 out of 2 files")
		testhelpers.ExpectFileContent(t, server, "site/a.txt", []byte("new"))
	})

	t.Run("configured overwrite skips the question", func(t *testing.T) {
		cfg := testhelpers.NewMockConfig(t, nil)
		cfg.Overwrite = true
		ctx, _ := testhelpers.NewTestContext(t, cfg)
		dir := t.TempDir()
		testhelpers.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("x")})

		prompter := &testhelpers.ScriptedPrompter{
			Selections: []string{"file"},
			Inputs:     []string{filepath.Join(dir, "a.txt"), ""},
		}
		ctx.Prompter = prompter

		require.NoError(t, actions.InteractiveAction(ctx))
		require.Len(t, prompter.Asked, 3)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		server := testhelpers.NewMockGitHubServerConfig()
		ctx, _ := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, server))
		ctx.Prompter = &testhelpers.ScriptedPrompter{
			Selections: []string{"file"},
			Inputs:     []string{"  "},
		}

		require.ErrorIs(t, actions.InteractiveAction(ctx), actions.ErrNoPath)
		require.Empty(t, server.Requests())
	})

	t.Run("cancelled menu returns the prompt error", func(t *testing.T) {
		ctx, _ := testhelpers.NewTestContext(t, testhelpers.NewMockConfig(t, nil))
		ctx.Prompter = &testhelpers.ScriptedPrompter{}

		require.ErrorIs(t, actions.InteractiveAction(ctx), tui.ErrCanceled)
	})
}
