package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ghuperrors "ghup.dev/ghup/internal/errors"
	ghclient "ghup.dev/ghup/internal/github"
	"ghup.dev/ghup/internal/uploader"
)

// Configuration keys. Flags use the same names with "-" instead of "_".
const (
	KeyToken       = "token"
	KeyOwner       = "owner"
	KeyRepo        = "repo"
	KeyBranch      = "branch"
	KeyAPIURL      = "api_url"
	KeyConcurrency = "concurrency"
	KeyTimeout     = "timeout"
	KeyMessage     = "message"
	KeyOverwrite   = "overwrite"
	KeyExclude     = "exclude"
	KeyLogFile     = "log_file"
	KeyDebug       = "debug"
)

// EnvPrefix is prepended to every key to form its environment variable
const EnvPrefix = "GHUP"

// Keys lists every configuration key in display order
var Keys = []string{
	KeyToken, KeyOwner, KeyRepo, KeyBranch, KeyAPIURL, KeyConcurrency,
	KeyTimeout, KeyMessage, KeyOverwrite, KeyExclude, KeyLogFile, KeyDebug,
}

// Config is the effective configuration of a command
type Config struct {
	Token       string        `yaml:"token,omitempty"`
	Owner       string        `yaml:"owner"`
	Repo        string        `yaml:"repo"`
	Branch      string        `yaml:"branch"`
	APIURL      string        `yaml:"api_url"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	Message     string        `yaml:"message"`
	Overwrite   bool          `yaml:"overwrite"`
	Exclude     []string      `yaml:"exclude"`
	LogFile     string        `yaml:"log_file"`
	Debug       bool          `yaml:"debug"`

	// ConfigFile is the file the values were read from, if any
	ConfigFile string `yaml:"-"`
	// RemoteDetected is true when owner or repo came from the origin remote
	RemoteDetected bool `yaml:"-"`
}

// LoadOptions controls where Load looks for values
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist
	ConfigFile string
	// Flags are bound on top of every other source
	Flags *pflag.FlagSet
	// Dir is the working directory used for .env and remote detection.
	// Defaults to the process working directory.
	Dir string
	// SkipRemote disables owner/repo detection from the origin remote
	SkipRemote bool
	// TokenLookup is used when no token is configured.
	// Defaults to GITHUB_TOKEN then `gh auth token`.
	TokenLookup func(ctx context.Context) (string, error)
}

// DefaultConfigPath returns the config file used when --config is not given
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ghup", "config.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ghup", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "ghup", "config.yaml")
}

// FlagName returns the command-line flag for a configuration key
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// EnvName returns the environment variable for a configuration key
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// Load resolves the configuration. It does not validate it; see Validate.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, EnvName(KeyToken), "GITHUB_TOKEN")
	_ = v.BindEnv(KeyDebug, EnvName(KeyDebug), "DEBUG")

	configFile, err := readConfigFile(v, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for _, key := range Keys {
			if f := opts.Flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", f.Name, err)
				}
			}
		}
	}

	cfg := &Config{
		Token:       strings.TrimSpace(v.GetString(KeyToken)),
		Owner:       strings.TrimSpace(v.GetString(KeyOwner)),
		Repo:        strings.TrimSpace(v.GetString(KeyRepo)),
		Branch:      strings.TrimSpace(v.GetString(KeyBranch)),
		APIURL:      strings.TrimSpace(v.GetString(KeyAPIURL)),
		Concurrency: v.GetInt(KeyConcurrency),
		Timeout:     v.GetDuration(KeyTimeout),
		Message:     v.GetString(KeyMessage),
		Overwrite:   v.GetBool(KeyOverwrite),
		Exclude:     splitList(v.GetStringSlice(KeyExclude)),
		LogFile:     v.GetString(KeyLogFile),
		Debug:       v.GetBool(KeyDebug),
		ConfigFile:  configFile,
	}

	if cfg.Token == "" {
		lookup := opts.TokenLookup
		if lookup == nil {
			lookup = ghclient.LookupToken
		}
		if token, err := lookup(ctx); err == nil {
			cfg.Token = token
		}
	}

	if !opts.SkipRemote && (cfg.Owner == "" || cfg.Repo == "") {
		if info, err := ghclient.DetectRepoInfo(dir); err == nil {
			cfg.applyRemote(info)
		}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = ghclient.DefaultAPIURL
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyConcurrency, 1)
	v.SetDefault(KeyTimeout, ghclient.DefaultTimeout)
	v.SetDefault(KeyMessage, uploader.DefaultMessage)
	v.SetDefault(KeyOverwrite, false)
	v.SetDefault(KeyDebug, false)
}

// readConfigFile reads an explicit config file, or the default one if it exists
func readConfigFile(v *viper.Viper, explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			return "", nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return path, nil
}

// applyRemote fills owner and repo from the origin remote. Values only
// complete a partially configured target when the repo names match the remote.
func (c *Config) applyRemote(info *ghclient.RepoInfo) {
	if c.Owner != "" && c.Owner != info.Owner {
		return
	}
	if c.Repo != "" && c.Repo != info.Repo {
		return
	}
	c.Owner = info.Owner
	c.Repo = info.Repo
	c.RemoteDetected = true
	if c.APIURL == "" {
		c.APIURL = info.APIURL()
	}
}

// splitList flattens comma-separated entries, as given by GHUP_EXCLUDE
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the configuration is complete enough to upload
func (c *Config) Validate() error {
	if c.Token == "" {
		return ghuperrors.NewMissingConfigError(KeyToken, "set --token, GHUP_TOKEN or GITHUB_TOKEN, or run `gh auth login`")
	}
	if c.Owner == "" {
		return ghuperrors.NewMissingConfigError(KeyOwner, "set --owner or GHUP_OWNER")
	}
	if c.Repo == "" {
		return ghuperrors.NewMissingConfigError(KeyRepo, "set --repo or GHUP_REPO")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := ghclient.ResolveAPIURL(c.APIURL); err != nil {
		return err
	}
	return uploader.ValidatePatterns(c.Exclude)
}

// Target returns the repository files are committed to
func (c *Config) Target() ghclient.Target {
	return ghclient.Target{
		Owner:  c.Owner,
		Repo:   c.Repo,
		Branch: c.Branch,
	}
}

// ClientOptions returns the options for an authenticated API client
func (c *Config) ClientOptions() ghclient.ClientOptions {
	return ghclient.ClientOptions{
		Token:   c.Token,
		BaseURL: c.APIURL,
		Timeout: c.Timeout,
	}
}

// UploaderOptions returns the uploader settings carried by the configuration
func (c *Config) UploaderOptions() uploader.Options {
	return uploader.Options{
		Message:     c.Message,
		Overwrite:   c.Overwrite,
		Concurrency: c.Concurrency,
		Exclude:     c.Exclude,
	}
}
