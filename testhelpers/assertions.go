// Package testhelpers provides testing utilities for ghup, including a mock
// contents API server, file tree fixtures and custom assertions.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectUploadedPaths asserts that the mock server received exactly the
// expected PUT paths, ignoring order.
func ExpectUploadedPaths(t *testing.T, config *MockGitHubServerConfig, expected []string) {
	t.Helper()

	actual := config.RequestPaths()
	sort.Strings(actual)

	want := append([]string(nil), expected...)
	sort.Strings(want)

	require.Equal(t, want, actual, "uploaded paths mismatch")
}

// ExpectFileContent asserts that the mock repository holds content at path
func ExpectFileContent(t *testing.T, config *MockGitHubServerConfig, path string, content []byte) {
	t.Helper()

	got, ok := config.File(path)
	require.True(t, ok, "expected %s to exist in the repository", path)
	require.Equal(t, content, got, "content mismatch for %s", path)
}
