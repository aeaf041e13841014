package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ghclient "ghup.dev/ghup/internal/github"
)

// TestToken is the credential handed to clients that talk to the mock server
const TestToken = "test-token"

// NewMockContentsClient starts a mock contents API and returns a client bound to it
func NewMockContentsClient(t *testing.T, config *MockGitHubServerConfig, branch string) *ghclient.ContentsClient {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	server := NewMockGitHubServer(t, config)
	client, err := ghclient.NewClient(context.Background(), ghclient.ClientOptions{
		Token:   TestToken,
		BaseURL: server.URL + "/",
	})
	require.NoError(t, err)

	return ghclient.NewContentsClient(client, ghclient.Target{
		Owner:  config.Owner,
		Repo:   config.Repo,
		Branch: branch,
	})
}

// WriteTree creates files below root. Keys are slash-separated relative paths.
func WriteTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, content, 0o600))
	}
}

// BinaryFixture returns bytes that are not valid UTF-8, including NUL and 0xFF
func BinaryFixture() []byte {
	data := make([]byte, 0, 512)
	for i := 0; i < 256; i++ {
		data = append(data, byte(255-i), byte(i))
	}
	return data
}
