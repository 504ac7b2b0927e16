package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/altvsync/pkg/platform"
)

func groupByName(t *testing.T, name string) Group {
	t.Helper()
	for _, g := range Catalog() {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("group %s not in catalog", name)
	return Group{}
}

func names(specs []Spec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Name)
	}
	return out
}

func TestCatalog_Order(t *testing.T) {
	groups := Catalog()
	order := make([]string, 0, len(groups))
	for _, g := range groups {
		order = append(order, g.Name)
	}
	assert.Equal(t, []string{GroupServer, GroupVoice, GroupCSharp, GroupJS, GroupJSByteCode}, order)
}

func TestServerGroup_BranchExtras(t *testing.T) {
	server := groupByName(t, GroupServer)
	base := []string{"altv-server", "vehmodels.bin", "vehmods.bin", "clothes.bin", "pedmodels.bin"}

	tests := []struct {
		branch Branch
		want   []string
	}{
		{branch: BranchRelease, want: base},
		{branch: BranchRC, want: base},
		{branch: BranchDev, want: append(append([]string{}, base...), "rpfdata.bin", "weaponmodels.bin")},
	}

	for _, tt := range tests {
		t.Run(string(tt.branch), func(t *testing.T) {
			target := Target{Branch: tt.branch, Platform: platform.Linux64, Features: Features{Server: true}}
			assert.Equal(t, tt.want, names(server.Resolve(target)))
		})
	}
}

func TestJSByteCodeGroup_ReleaseOnly(t *testing.T) {
	g := groupByName(t, GroupJSByteCode)

	tests := []struct {
		name    string
		target  Target
		enabled bool
	}{
		{name: "release with flag", target: Target{Branch: BranchRelease, Features: Features{JSByteCode: true}}, enabled: true},
		{name: "rc with flag", target: Target{Branch: BranchRC, Features: Features{JSByteCode: true}}, enabled: false},
		{name: "dev with flag", target: Target{Branch: BranchDev, Features: Features{JSByteCode: true}}, enabled: false},
		{name: "release without flag", target: Target{Branch: BranchRelease}, enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enabled, g.Enabled(tt.target))
		})
	}

	specs := g.Resolve(Target{Branch: BranchRelease, Platform: platform.Linux64})
	require.Len(t, specs, 1)
	assert.Equal(t, "modules/libjs-bytecode-module.so", specs[0].ManifestKey)
}

func TestGroupsFollowFeatureFlags(t *testing.T) {
	target := Target{Branch: BranchRC, Features: Features{Voice: true, JS: true}}

	var enabled []string
	for _, g := range Catalog() {
		if g.Enabled(target) {
			enabled = append(enabled, g.Name)
		}
	}
	assert.Equal(t, []string{GroupVoice, GroupJS}, enabled)
}

func TestPlatformSpecificPaths(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		platform platform.Platform
		want     []Spec
	}{
		{
			name:     "voice windows",
			group:    GroupVoice,
			platform: platform.Windows64,
			want: []Spec{{
				Name: "altv-voice-server.exe", ManifestKey: "altv-voice-server.exe", LocalPath: "altv-voice-server.exe",
				RemotePath: "altv-voice-server.exe", Component: ComponentVoice, Executable: true,
			}},
		},
		{
			name:     "csharp linux",
			group:    GroupCSharp,
			platform: platform.Linux64,
			want: []Spec{
				{Name: "AltV.Net.Host.dll", ManifestKey: "AltV.Net.Host.dll", LocalPath: "AltV.Net.Host.dll", RemotePath: "AltV.Net.Host.dll", Component: ComponentCSharp},
				{Name: "AltV.Net.Host.runtimeconfig.json", ManifestKey: "AltV.Net.Host.runtimeconfig.json", LocalPath: "AltV.Net.Host.runtimeconfig.json", RemotePath: "AltV.Net.Host.runtimeconfig.json", Component: ComponentCSharp},
				{Name: "libcsharp-module.so", ManifestKey: "modules/libcsharp-module.so", LocalPath: "modules/libcsharp-module.so", RemotePath: "modules/libcsharp-module.so", Component: ComponentCSharp},
			},
		},
		{
			name:     "js windows",
			group:    GroupJS,
			platform: platform.Windows64,
			want: []Spec{
				{Name: "js-module.dll", ManifestKey: "modules/js-module/js-module.dll", LocalPath: "modules/js-module/js-module.dll", RemotePath: "modules/js-module/js-module.dll", Component: ComponentJS},
				{Name: "libnode.dll", ManifestKey: "modules/js-module/libnode.dll", LocalPath: "modules/js-module/libnode.dll", RemotePath: "modules/js-module/libnode.dll", Component: ComponentJS},
			},
		},
		{
			name:     "js linux",
			group:    GroupJS,
			platform: platform.Linux64,
			want: []Spec{
				{Name: "libjs-module.so", ManifestKey: "modules/js-module/libjs-module.so", LocalPath: "modules/js-module/libjs-module.so", RemotePath: "modules/js-module/libjs-module.so", Component: ComponentJS},
				{Name: "libnode.so.102", ManifestKey: "modules/js-module/libnode.so.102", LocalPath: "modules/js-module/libnode.so.102", RemotePath: "modules/js-module/libnode.so.102", Component: ComponentJS},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupByName(t, tt.group).Resolve(Target{Branch: BranchRelease, Platform: tt.platform})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBranch(t *testing.T) {
	tests := []struct {
		input  string
		want   Branch
		wantOK bool
	}{
		{input: "release", want: BranchRelease, wantOK: true},
		{input: " RC ", want: BranchRC, wantOK: true},
		{input: "Dev", want: BranchDev, wantOK: true},
		{input: "nightly", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBranch(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []string{"release", "rc", "dev"}, ValidBranchNames())
}

func TestPredicates(t *testing.T) {
	always := func(Target) bool { return true }
	never := func(Target) bool { return false }

	assert.True(t, All()(Target{}))
	assert.True(t, All(always, always)(Target{}))
	assert.False(t, All(always, never)(Target{}))
	assert.True(t, BranchIs(BranchDev)(Target{Branch: BranchDev}))
	assert.False(t, BranchIs(BranchDev)(Target{Branch: BranchRC}))

	assert.True(t, Spec{}.Applies(Target{}))
	assert.False(t, Group{}.Enabled(Target{}), "a group without predicate is never enabled")
	assert.Empty(t, Group{}.Resolve(Target{}))
}
