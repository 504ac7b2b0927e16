package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/altvsync/pkg/platform"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{name: "default", base: "", want: DefaultCDN},
		{name: "trailing slash", base: "http://127.0.0.1:8080/", want: "http://127.0.0.1:8080"},
		{name: "relative", base: "cdn.alt-mp.com", wantErr: true},
		{name: "ftp", base: "ftp://cdn.alt-mp.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.base)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Base())
		})
	}
}

func TestLayoutURLs(t *testing.T) {
	l, err := NewLayout(DefaultCDN)
	require.NoError(t, err)

	target := Target{Branch: BranchRC, Platform: platform.Windows64}

	tests := []struct {
		name        string
		spec        Spec
		manifestURL string
		remoteURL   string
	}{
		{
			name:        "server binary",
			spec:        binary(ComponentServer, "altv-server.exe", true),
			manifestURL: "https://cdn.alt-mp.com/server/rc/x64_win32/update.json",
			remoteURL:   "https://cdn.alt-mp.com/server/rc/x64_win32/altv-server.exe",
		},
		{
			name:        "data blob",
			spec:        dataFile("vehmodels.bin"),
			manifestURL: "https://cdn.alt-mp.com/data/rc/update.json",
			remoteURL:   "https://cdn.alt-mp.com/data/rc/data/vehmodels.bin",
		},
		{
			name:        "js module",
			spec:        binary(ComponentJS, "modules/js-module/js-module.dll", false),
			manifestURL: "https://cdn.alt-mp.com/js-module/rc/x64_win32/update.json",
			remoteURL:   "https://cdn.alt-mp.com/js-module/rc/x64_win32/modules/js-module/js-module.dll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.manifestURL, l.ManifestURL(target, tt.spec))
			u, err := l.RemoteURL(target, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.remoteURL, u.String())
		})
	}

	assert.Equal(t, "https://cdn.alt-mp.com/server/rc/x64_win32/update.json", l.ComponentManifestURL(target, ComponentServer))
}

func TestRemoteURL_UnsupportedPlatform(t *testing.T) {
	l, err := NewLayout(DefaultCDN)
	require.NoError(t, err)
	target := Target{Branch: BranchRelease, Platform: "x64_darwin"}

	_, err = l.RemoteURL(target, binary(ComponentServer, "altv-server", true))
	assert.Error(t, err)

	// data blobs are shared by every platform
	u, err := l.RemoteURL(target, dataFile("clothes.bin"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.alt-mp.com/data/release/data/clothes.bin", u.String())
}
