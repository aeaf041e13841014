package testhelpers

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ghup.dev/ghup/internal/config"
	"ghup.dev/ghup/internal/runtime"
	"ghup.dev/ghup/internal/tui"
	"ghup.dev/ghup/internal/uploader"
)

// NewMockConfig starts a mock contents API and returns a configuration that targets it
func NewMockConfig(t *testing.T, server *MockGitHubServerConfig) *config.Config {
	t.Helper()
	if server == nil {
		server = NewMockGitHubServerConfig()
	}

	s := NewMockGitHubServer(t, server)
	return &config.Config{
		Token:       TestToken,
		Owner:       server.Owner,
		Repo:        server.Repo,
		APIURL:      s.URL + "/",
		Concurrency: 1,
		Timeout:     5 * time.Second,
		Message:     uploader.DefaultMessage,
	}
}

// NewTestContext creates a runtime context whose console output is captured
func NewTestContext(t *testing.T, cfg *config.Config) (*runtime.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	splog, err := tui.NewSplogWithWriter(&out, "", false)
	require.NoError(t, err)

	return runtime.NewContext(context.Background(), cfg, splog), &out
}

// ScriptedPrompter answers prompts from fixed lists, in order
type ScriptedPrompter struct {
	Selections []string
	Inputs     []string
	Confirms   []bool

	// Asked records every prompt message shown
	Asked []string
}

// Ensure interface compliance.
var _ tui.Prompter = (*ScriptedPrompter)(nil)

func (p *ScriptedPrompter) Select(title string, _ []tui.SelectOption, _ int) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Selections) == 0 {
		return "", tui.ErrCanceled
	}
	choice := p.Selections[0]
	p.Selections = p.Selections[1:]
	return choice, nil
}

func (p *ScriptedPrompter) TextInput(prompt, _, defaultValue string) (string, error) {
	p.Asked = append(p.Asked, prompt)
	if len(p.Inputs) == 0 {
		return defaultValue, nil
	}
	answer := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	return answer, nil
}

func (p *ScriptedPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	p.Asked = append(p.Asked, prompt)
	if len(p.Confirms) == 0 {
		return defaultValue, nil
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}
