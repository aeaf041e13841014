package testhelpers

import (
	"crypto/sha1" //nolint:gosec // git blob ids are SHA-1
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is a write request received by the mock contents API
type RecordedRequest struct {
	Method        string
	Path          string
	Message       string
	Branch        string
	SHA           string
	Content       []byte
	RawContent    string
	Authorization string
	Accept        string
}

// MockGitHubServerConfig configures the behavior of a mock contents API
type MockGitHubServerConfig struct {
	// Owner and Repo for the mock server
	Owner string
	Repo  string
	// Files holds the repository contents keyed by path
	Files map[string][]byte
	// Statuses forces a response status for PUT requests to a path
	Statuses map[string]int
	// Messages overrides the error message returned with a forced status
	Messages map[string]string

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:    "owner",
		Repo:     "repo",
		Files:    make(map[string][]byte),
		Statuses: make(map[string]int),
		Messages: make(map[string]string),
	}
}

// Requests returns every PUT request received so far, in arrival order
func (c *MockGitHubServerConfig) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RecordedRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// RequestPaths returns the repository paths of every PUT request received
func (c *MockGitHubServerConfig) RequestPaths() []string {
	reqs := c.Requests()
	paths := make([]string, len(reqs))
	for i, r := range reqs {
		paths[i] = r.Path
	}
	return paths
}

// File returns the current content stored at path
func (c *MockGitHubServerConfig) File(path string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.Files[path]
	return data, ok
}

// SetFile seeds the repository with a file
func (c *MockGitHubServerConfig) SetFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Files[path] = content
}

// BlobSHA computes the git blob id of content
func BlobSHA(content []byte) string {
	h := sha1.New() //nolint:gosec // git blob ids are SHA-1
	_, _ = fmt.Fprintf(h, "blob %d\x00", len(content))
	_, _ = h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// NewMockGitHubServer creates an httptest server that mocks the repository contents endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/contents/"

	mux := http.NewServeMux()
	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, basePath)

		switch r.Method {
		case http.MethodGet:
			config.handleGet(w, path)
		case http.MethodPut:
			config.handlePut(w, r, path)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

func (c *MockGitHubServerConfig) handleGet(w http.ResponseWriter, path string) {
	content, ok := c.File(path)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"type":     "file",
		"name":     path[strings.LastIndex(path, "/")+1:],
		"path":     path,
		"sha":      BlobSHA(content),
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString(content),
	})
}

func (c *MockGitHubServerConfig) handlePut(w http.ResponseWriter, r *http.Request, path string) {
	var body struct {
		Message string  `json:"message"`
		Content *string `json:"content"`
		SHA     string  `json:"sha"`
		Branch  string  `json:"branch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Problems parsing JSON"})
		return
	}

	var raw string
	if body.Content != nil {
		raw = *body.Content
	}
	content, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "content is not valid Base64"})
		return
	}

	c.mu.Lock()
	c.requests = append(c.requests, RecordedRequest{
		Method:        r.Method,
		Path:          path,
		Message:       body.Message,
		Branch:        body.Branch,
		SHA:           body.SHA,
		Content:       content,
		RawContent:    raw,
		Authorization: r.Header.Get("Authorization"),
		Accept:        r.Header.Get("Accept"),
	})
	status, forced := c.Statuses[path]
	message := c.Messages[path]
	existing, exists := c.Files[path]
	c.mu.Unlock()

	if forced {
		if message == "" {
			message = http.StatusText(status)
		}
		writeJSON(w, status, map[string]string{"message": message})
		return
	}

	switch {
	case exists && body.SHA == "":
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"message": "Invalid request.\n\n\"sha\" wasn't supplied.",
		})
		return
	case exists && body.SHA != BlobSHA(existing):
		writeJSON(w, http.StatusConflict, map[string]string{
			"message": fmt.Sprintf("%s does not match %s", path, body.SHA),
		})
		return
	}

	c.SetFile(path, content)

	status = http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]interface{}{
		"content": map[string]string{
			"name":     path[strings.LastIndex(path, "/")+1:],
			"path":     path,
			"sha":      BlobSHA(content),
			"html_url": "https://github.com/" + c.Owner + "/" + c.Repo + "/blob/main/" + path,
		},
		"commit": map[string]string{
			"sha":     BlobSHA([]byte(body.Message + path)),
			"message": body.Message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
