package artifact

import (
	"path"

	"github.com/cperrin88/altvsync/pkg/platform"
)

// Group names.
const (
	GroupServer     = "server"
	GroupVoice      = "voice"
	GroupCSharp     = "csharp"
	GroupJS         = "js"
	GroupJSByteCode = "js-bytecode"
)

// Data blobs shipped with the server on every branch.
var baseDataFiles = []string{"vehmodels.bin", "vehmods.bin", "clothes.bin", "pedmodels.bin"}

// Data blobs only published on the dev branch.
var devDataFiles = []string{"rpfdata.bin", "weaponmodels.bin"}

// Catalog returns every artifact group in sync order.
func Catalog() []Group {
	return []Group{
		{
			Name:        GroupServer,
			Dirs:        []string{"data"},
			EnabledWhen: FeatureEnabled(func(f Features) bool { return f.Server }),
			Specs:       serverSpecs,
		},
		{
			Name:        GroupVoice,
			EnabledWhen: FeatureEnabled(func(f Features) bool { return f.Voice }),
			Specs:       voiceSpecs,
		},
		{
			Name:        GroupCSharp,
			Dirs:        []string{"modules"},
			EnabledWhen: FeatureEnabled(func(f Features) bool { return f.CSharp }),
			Specs:       csharpSpecs,
		},
		{
			Name:        GroupJS,
			Dirs:        []string{"modules/js-module"},
			EnabledWhen: FeatureEnabled(func(f Features) bool { return f.JS }),
			Specs:       jsSpecs,
		},
		{
			Name: GroupJSByteCode,
			Dirs: []string{"modules"},
			// bytecode builds are only published on release
			EnabledWhen: All(
				FeatureEnabled(func(f Features) bool { return f.JSByteCode }),
				BranchIs(BranchRelease),
			),
			Specs: jsByteCodeSpecs,
		},
	}
}

// binary describes a file that sits at the same relative path in the manifest,
// on the CDN and locally.
func binary(c Component, rel string, executable bool) Spec {
	return Spec{
		Name:        path.Base(rel),
		ManifestKey: rel,
		LocalPath:   rel,
		RemotePath:  rel,
		Component:   c,
		Executable:  executable,
	}
}

func dataFile(name string) Spec {
	return Spec{
		Name:        name,
		ManifestKey: name,
		LocalPath:   path.Join("data", name),
		RemotePath:  name,
		Component:   ComponentData,
	}
}

func serverSpecs(p platform.Platform) []Spec {
	specs := []Spec{binary(ComponentServer, p.ExecutableName("altv-server"), true)}
	for _, name := range baseDataFiles {
		specs = append(specs, dataFile(name))
	}
	for _, name := range devDataFiles {
		s := dataFile(name)
		s.When = BranchIs(BranchDev)
		specs = append(specs, s)
	}
	return specs
}

func voiceSpecs(p platform.Platform) []Spec {
	return []Spec{binary(ComponentVoice, p.ExecutableName("altv-voice-server"), true)}
}

func csharpSpecs(p platform.Platform) []Spec {
	return []Spec{
		binary(ComponentCSharp, "AltV.Net.Host.dll", false),
		binary(ComponentCSharp, "AltV.Net.Host.runtimeconfig.json", false),
		binary(ComponentCSharp, path.Join("modules", p.LibraryName("csharp-module")), false),
	}
}

func jsSpecs(p platform.Platform) []Spec {
	libnode := "libnode.so.102"
	if p.IsWindows() {
		libnode = "libnode.dll"
	}
	return []Spec{
		binary(ComponentJS, path.Join("modules", "js-module", p.LibraryName("js-module")), false),
		binary(ComponentJS, path.Join("modules", "js-module", libnode), false),
	}
}

func jsByteCodeSpecs(p platform.Platform) []Spec {
	return []Spec{binary(ComponentJSByteCode, path.Join("modules", p.LibraryName("js-bytecode-module")), false)}
}
