// Package config resolves ghup configuration.
//
// Values are read, highest precedence first, from:
//   - command-line flags
//   - GHUP_* environment variables (and a .env file in the working directory)
//   - the YAML config file (--config, or ~/.config/ghup/config.yaml)
//   - built-in defaults
//
// A missing token falls back to GITHUB_TOKEN and then `gh auth token`.
// Missing owner and repo fall back to the origin remote of the current checkout.
package config
