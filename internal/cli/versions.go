package cli

import (
	stderrors "errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/cperrin88/altvsync/pkg/artifact"
	"github.com/cperrin88/altvsync/pkg/config"
	"github.com/cperrin88/altvsync/pkg/errors"
	"github.com/cperrin88/altvsync/pkg/manifest"
)

// NewVersionsCmd creates the versions command.
func NewVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Show the server version published on every branch",
		Long: `Query the CDN for the server version of every branch for the configured
platform and list them newest first.`,
		Args: cobra.NoArgs,
		RunE: runVersions,
	}
}

type branchVersion struct {
	Branch  string `json:"branch"`
	Version string `json:"version"`
	Latest  bool   `json:"latest"`
}

func runVersions(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		if !stderrors.Is(err, errors.ErrConfigNotFound) {
			return err
		}
		cfg = config.DefaultConfig()
	}

	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	target, err := cfg.Target()
	if err != nil {
		return err
	}

	mc := loadManifestClient()
	versions := make([]branchVersion, 0, len(artifact.ValidBranches()))
	for _, b := range artifact.ValidBranches() {
		t := target
		t.Branch = b
		versions = append(versions, branchVersion{
			Branch:  string(b),
			Version: mc.ResolveVersion(cmd.Context(), layout.ComponentManifestURL(t, artifact.ComponentServer)),
		})
	}
	sortBranchVersions(versions)
	markLatest(versions)

	out := cmd.OutOrStdout()
	if format == FormatJSON {
		data, err := json.MarshalIndent(versions, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintf(tw, "BRANCH\tVERSION\t(%s)\n", target.Platform)
	for _, v := range versions {
		mark := ""
		if v.Latest {
			mark = "latest"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Branch, v.Version, mark)
	}
	return tw.Flush()
}

// sortBranchVersions orders by version, newest first; unparseable versions keep their order at the end.
func sortBranchVersions(versions []branchVersion) {
	tags := make([]string, 0, len(versions))
	for _, v := range versions {
		tags = append(tags, v.Version)
	}
	rank := make(map[string]int, len(tags))
	for i, tag := range manifest.SortVersions(tags) {
		if _, seen := rank[tag]; !seen {
			rank[tag] = i
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return rank[versions[i].Version] < rank[versions[j].Version]
	})
}

// markLatest flags the entries that no other entry has a newer version than.
// Entries without a parseable version are never flagged.
func markLatest(versions []branchVersion) {
	for i := range versions {
		versions[i].Latest = manifest.ValidVersion(versions[i].Version)
		for _, other := range versions {
			if manifest.Newer(other.Version, versions[i].Version) {
				versions[i].Latest = false
				break
			}
		}
	}
}
