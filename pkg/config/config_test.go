package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/fsutil"
	"github.com/cperrin88/altvsync/pkg/platform"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "release", cfg.Branch)
	assert.Equal(t, "./", cfg.OutputPath)
	assert.Equal(t, artifact.DefaultCDN, cfg.CDNURL)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.True(t, cfg.Server)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.json")

	configContent := `{
  "branch": "dev",
  "windows": false,
  "server": true,
  "voice": true,
  "csharp": false,
  "js": true,
  "jsByteCode": false,
  "outputPath": "/srv/altv",
  "hooks": {"postDownload": "hooks/post.tengo"}
}`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "dev", cfg.Branch)
	assert.True(t, cfg.Server)
	assert.True(t, cfg.Voice)
	assert.False(t, cfg.CSharp)
	assert.True(t, cfg.JS)
	assert.Equal(t, "/srv/altv", cfg.OutputPath)
	assert.Equal(t, "hooks/post.tengo", cfg.Hooks.PostDownload)

	// defaults for the optional settings
	assert.Equal(t, artifact.DefaultCDN, cfg.CDNURL)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr error
	}{
		{name: "missing file", content: nil, wantErr: errors.ErrConfigNotFound},
		{name: "malformed json", content: ptr(`{"branch": "release",`), wantErr: errors.ErrConfigInvalid},
		{name: "null document", content: ptr("null\n"), wantErr: errors.ErrConfigInvalid},
		{name: "empty file", content: ptr(""), wantErr: errors.ErrConfigInvalid},
				{name: "wrong type", content: ptr(`{"windows": "yes"}`), wantErr: errors.ErrConfigInvalid},
		{name: "unknown branch", content: ptr(`{"branch": "nightly"}`), wantErr: errors.ErrInvalidBranch},
		{name: "negative concurrency", content: ptr(`{"concurrency": -2}`), wantErr: errors.ErrConfigInvalid},
		{name: "relative cdn", content: ptr(`{"cdnUrl": "cdn.alt-mp.com"}`), wantErr: errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(configPath, []byte(*tt.content), fsutil.FileModeDefault))
			}

			cfg, err := LoadConfig(configPath)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.content != nil {
				// every load failure of an existing file tells the user to remove it
				assert.ErrorIs(t, err, errors.ErrConfigInvalid)
				assert.Contains(t, err.Error(), "remove it and run the program again")
			}
		})
	}

	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_NormalizesBranch(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`{"branch": " RC "}`))
	require.NoError(t, err)
	assert.Equal(t, "rc", cfg.Branch)

	cfg, err = LoadConfigFromReader(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Branch)
	assert.Equal(t, "./", cfg.OutputPath)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Branch = "rc"
	cfg.Windows = true
	cfg.CSharp = true
	cfg.OutputPath = "server"

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.json")

	require.NoError(t, cfg.SaveConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"jsByteCode": false`)
	assert.Contains(t, string(data), `"outputPath": "server"`)

	_, err = os.Stat(configPath + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, DefaultConfig().SaveConfig(""), errors.ErrEmptyConfigPath)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "invalid branch", mutate: func(c *Config) { c.Branch = "beta" }, wantErr: errors.ErrInvalidBranch},
		{name: "empty output", mutate: func(c *Config) { c.OutputPath = "" }, wantErr: errors.ErrInvalidPath},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: errors.ErrConfigInvalid},
		{name: "bad cdn scheme", mutate: func(c *Config) { c.CDNURL = "ftp://cdn.alt-mp.com" }, wantErr: errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), errors.ErrConfigInvalid)
}

func TestTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Branch = "release"
	cfg.Windows = true
	cfg.Server = false
	cfg.JS = true
	cfg.JSByteCode = true
	cfg.OutputPath = "srv/"

	target, err := cfg.Target()
	require.NoError(t, err)

	assert.Equal(t, artifact.Target{
		Branch:     artifact.BranchRelease,
		Platform:   platform.Windows64,
		OutputPath: "srv",
		Features:   artifact.Features{JS: true, JSByteCode: true},
	}, target)

	cfg.Windows = false
	target, err = cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, platform.Linux64, target.Platform)

	cfg.Branch = "nope"
	_, err = cfg.Target()
	assert.ErrorIs(t, err, errors.ErrInvalidBranch)
}

func TestToYAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hooks.PostDownload = "post.tengo"

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "branch: release")
	assert.Contains(t, out, "cdnUrl: https://cdn.alt-mp.com")
	assert.Contains(t, out, "hooks:\n  postDownload: post.tengo")
}

func ptr(s string) *string { return &s }
