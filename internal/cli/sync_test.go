package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/altvsync/pkg/config"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/manifest"
)

func TestApplySyncOverrides(t *testing.T) {
	tests := []struct {
		name    string
		opts    SyncOptions
		check   func(t *testing.T, cfg *config.Config)
		wantErr error
	}{
		{
			name: "no overrides",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultConfig(), cfg)
			},
		},
		{
			name: "all overrides",
			opts: SyncOptions{Branch: "RC", OutputDir: "/srv", Concurrency: 4, CDNURL: "http://mirror.local/altv"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "rc", cfg.Branch)
				assert.Equal(t, "/srv", cfg.OutputPath)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, "http://mirror.local/altv", cfg.CDNURL)
			},
		},
		{
			name: "platform alias",
			opts: SyncOptions{Platform: "Windows"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.Windows)
			},
		},
		{
			name: "linux platform token",
			opts: SyncOptions{Platform: "x64_linux"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.False(t, cfg.Windows)
			},
		},
		{name: "unknown platform", opts: SyncOptions{Platform: "darwin"}, wantErr: errors.ErrConfigInvalid},
		{name: "unknown branch", opts: SyncOptions{Branch: "beta"}, wantErr: errors.ErrInvalidBranch},
		{name: "negative concurrency", opts: SyncOptions{Concurrency: -1}, wantErr: errors.ErrConfigInvalid},
		{name: "bad cdn", opts: SyncOptions{CDNURL: "not a url"}, wantErr: errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := applySyncOverrides(cfg, &tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestOutputFormat(t *testing.T) {
	defer func() { OutputFormat = nil }()

	OutputFormat = nil
	format, err := outputFormat()
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	value := "JSON"
	OutputFormat = &value
	format, err = outputFormat()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	value = "yaml"
	_, err = outputFormat()
	assert.Error(t, err)
}

func TestSortBranchVersions(t *testing.T) {
	versions := []branchVersion{
		{Branch: "release", Version: "15.0"},
		{Branch: "rc", Version: "unknown"},
		{Branch: "dev", Version: "16.0-dev3"},
	}
	sortBranchVersions(versions)

	assert.Equal(t, []branchVersion{
		{Branch: "dev", Version: "16.0-dev3"},
		{Branch: "release", Version: "15.0"},
		{Branch: "rc", Version: "unknown"},
	}, versions)
}

func TestMarkLatest(t *testing.T) {
	tests := []struct {
		name     string
		versions []branchVersion
		want     []bool
	}{
		{
			name: "single newest",
			versions: []branchVersion{
				{Branch: "rc", Version: "16.0-rc3"},
				{Branch: "dev", Version: "16.0-dev12"},
				{Branch: "release", Version: "15.0"},
			},
			want: []bool{true, false, false},
		},
		{
			name: "tie",
			versions: []branchVersion{
				{Branch: "release", Version: "16.0"},
				{Branch: "rc", Version: "16.0"},
				{Branch: "dev", Version: manifest.UnknownVersion},
			},
			want: []bool{true, true, false},
		},
		{
			name: "nothing parses",
			versions: []branchVersion{
				{Branch: "release", Version: manifest.UnknownVersion},
				{Branch: "rc", Version: "garbage"},
			},
			want: []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markLatest(tt.versions)
			got := make([]bool, 0, len(tt.versions))
			for _, v := range tt.versions {
				got = append(got, v.Latest)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadHookRunner_NoHook(t *testing.T) {
	runner, err := loadHookRunner(config.DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, runner)

	cfg := config.DefaultConfig()
	cfg.Hooks.PostDownload = "hook.lua"
	_, err = loadHookRunner(cfg)
	assert.Error(t, err)
}
