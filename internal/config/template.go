package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	ghclient "ghup.dev/ghup/internal/github"
	"ghup.dev/ghup/internal/uploader"
)

// redactedToken replaces the token in anything that is printed
const redactedToken = "********"

// ErrConfigExists is returned by WriteTemplate when the file already exists
var ErrConfigExists = errors.New("config file already exists")

// Redacted returns a copy of the configuration that is safe to print
func (c *Config) Redacted() Config {
	out := *c
	if out.Token != "" {
		out.Token = redactedToken
	}
	out.Exclude = append([]string(nil), c.Exclude...)
	return out
}

// Render returns the effective configuration as YAML, with the token redacted
func (c *Config) Render() (string, error) {
	redacted := c.Redacted()
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(data), nil
}

type templateEntry struct {
	key     string
	value   string
	tag     string
	comment string
}

var templateEntries = []templateEntry{
	{KeyOwner, "", "!!str", "Repository owner (user or organisation). Detected from the origin remote when empty."},
	{KeyRepo, "", "!!str", "Repository name. Detected from the origin remote when empty."},
	{KeyBranch, "", "!!str", "Branch to commit to. Empty means the repository default branch."},
	{KeyAPIURL, ghclient.DefaultAPIURL, "!!str", "REST API endpoint, or a GitHub Enterprise hostname."},
	{KeyConcurrency, "1", "!!int", "Files uploaded in parallel by upload-directory."},
	{KeyTimeout, ghclient.DefaultTimeout.String(), "!!str", "Timeout for each HTTP request."},
	{KeyMessage, uploader.DefaultMessage, "!!str", "Commit message. {name} is the file name, {path} the repository path."},
	{KeyOverwrite, "false", "!!bool", "Replace files that already exist instead of failing."},
	{KeyLogFile, "", "!!str", "Write a rotating debug log to this file."},
}

// Template returns a commented YAML config file. The token is not part of it;
// it is read from GHUP_TOKEN, GITHUB_TOKEN or the gh CLI.
func Template() ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, entry := range templateEntries {
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       entry.key,
			HeadComment: entry.comment,
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: entry.tag, Value: entry.value}
		if entry.tag == "!!str" {
			value.Style = yaml.DoubleQuotedStyle
		}
		mapping.Content = append(mapping.Content, key, value)
	}

	exclude := &yaml.Node{
		Kind:        yaml.ScalarNode,
		Value:       KeyExclude,
		HeadComment: "Glob patterns skipped by upload-directory, e.g. \"**/.git\".",
	}
	mapping.Content = append(mapping.Content, exclude, &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: "**/.git"}, {Kind: yaml.ScalarNode, Value: ".DS_Store"}},
	})

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "ghup configuration. Flags and GHUP_* environment variables take precedence.",
		Content:     []*yaml.Node{mapping},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTemplate writes Template to path. An existing file is only replaced with force.
func WriteTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, strconv.Quote(path))
	}

	data, err := Template()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
