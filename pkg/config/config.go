// Package config handles the persisted altvsync configuration: which branch and
// platform to sync, which artifact groups are enabled and where the server tree lives.
// The configuration is stored as JSON next to the binary by default and is turned
// into an immutable artifact.Target for each run.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/fsutil"
	"github.com/cperrin88/altvsync/pkg/platform"
)

// Config represents the application configuration.
type Config struct {
	Branch     string `json:"branch" yaml:"branch"`
	Windows    bool   `json:"windows" yaml:"windows"`
	Server     bool   `json:"server" yaml:"server"`
	Voice      bool   `json:"voice" yaml:"voice"`
	CSharp     bool   `json:"csharp" yaml:"csharp"`
	JS         bool   `json:"js" yaml:"js"`
	JSByteCode bool   `json:"jsByteCode" yaml:"jsByteCode"`
	OutputPath string `json:"outputPath" yaml:"outputPath"`

	// Optional settings, filled with defaults when absent.
	CDNURL      string      `json:"cdnUrl,omitempty" yaml:"cdnUrl,omitempty"`
	Concurrency int         `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Hooks       HooksConfig `json:"hooks,omitempty" yaml:"hooks,omitempty"`
}

// HooksConfig points at the Tengo scripts run during a sync.
type HooksConfig struct {
	// PostDownload runs after every successful download.
	PostDownload string `json:"postDownload,omitempty" yaml:"postDownload,omitempty"`
}

// Default configuration values.
const (
	// DefaultConfigPath is the config file looked up when --config is not given.
	DefaultConfigPath = "config.json"

	// DefaultOutputPath is the output root used when none is configured.
	DefaultOutputPath = "./"

	// DefaultConcurrency processes artifacts one at a time.
	DefaultConcurrency = 1

	// JSONIndent is the indentation used when saving the config.
	JSONIndent = "  "

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Branch:      string(artifact.BranchRelease),
		Windows:     platform.Current().IsWindows(),
		Server:      true,
		OutputPath:  DefaultOutputPath,
		CDNURL:      artifact.DefaultCDN,
		Concurrency: DefaultConcurrency,
	}
}

// LoadConfig loads configuration from a file.
// A missing file yields ErrConfigNotFound so the caller can prompt for a new one.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, errors.ErrConfigInvalidWithPath(path, err)
	}
	return cfg, nil
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var parsed *Config
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if parsed == nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "config document is empty or null")
	}
	config := *parsed

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig writes the configuration to path as indented JSON.
// The file is written to path+".tmp" first and renamed into place.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	data, err := json.MarshalIndent(c, "", JSONIndent)
	if err != nil {
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	data = append(data, '\n')

	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrap(errors.ErrConfigWrite, err.Error())
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, fsutil.FileModeDefault); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigWrite, err.Error())
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigWrite, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigInvalid
	}
	if _, ok := artifact.ParseBranch(c.Branch); !ok {
		return errors.ErrInvalidBranchWithDetails(c.Branch, artifact.ValidBranchNames())
	}
	if c.OutputPath == "" {
		return errors.Wrap(errors.ErrInvalidPath, "outputPath cannot be empty")
	}
	if c.Concurrency < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := artifact.NewLayout(c.CDNURL); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, err.Error())
	}
	return nil
}

// Target builds the sync target of a run from the configuration.
func (c *Config) Target() (artifact.Target, error) {
	if err := c.Validate(); err != nil {
		return artifact.Target{}, err
	}
	branch, _ := artifact.ParseBranch(c.Branch)
	return artifact.Target{
		Branch:     branch,
		Platform:   platform.FromWindows(c.Windows),
		OutputPath: filepath.Clean(c.OutputPath),
		Features: artifact.Features{
			Server:     c.Server,
			Voice:      c.Voice,
			CSharp:     c.CSharp,
			JS:         c.JS,
			JSByteCode: c.JSByteCode,
		},
	}, nil
}

// Layout returns the CDN layout of the configured base URL.
func (c *Config) Layout() (artifact.Layout, error) {
	return artifact.NewLayout(c.CDNURL)
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Branch == "" {
		c.Branch = string(artifact.BranchRelease)
	}
	if b, ok := artifact.ParseBranch(c.Branch); ok {
		c.Branch = string(b)
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.CDNURL == "" {
		c.CDNURL = artifact.DefaultCDN
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
}
