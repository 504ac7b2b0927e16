package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortVersions(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "release ordering",
			input: []string{"15.2", "16.0.5", "16.0"},
			want:  []string{"16.0.5", "16.0", "15.2"},
		},
		{
			name:  "prerelease sorts below release",
			input: []string{"16.0-dev12", "16.0", "16.0-rc3"},
			want:  []string{"16.0", "16.0-rc3", "16.0-dev12"},
		},
		{
			name:  "unknown kept last in order",
			input: []string{UnknownVersion, "15.0", "garbage", "16.0"},
			want:  []string{"16.0", "15.0", UnknownVersion, "garbage"},
		},
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortVersions(tt.input))
		})
	}
}

func TestNewer(t *testing.T) {
	assert.True(t, Newer("16.0.5", "16.0"))
	assert.False(t, Newer("16.0", "16.0.5"))
	assert.False(t, Newer("16.0", "16.0"))
	assert.False(t, Newer(UnknownVersion, "16.0"))
	assert.False(t, Newer("16.0", UnknownVersion))
}

func TestValidVersion(t *testing.T) {
	assert.True(t, ValidVersion("16.0-dev12"))
	assert.True(t, ValidVersion("15.0"))
	assert.False(t, ValidVersion(UnknownVersion))
	assert.False(t, ValidVersion(""))
}
