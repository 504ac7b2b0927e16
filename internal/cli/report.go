package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/cperrin88/altvsync/pkg/orchestrator"
)

type reportRow struct {
	Artifact string `json:"artifact"`
	Group    string `json:"group"`
	Status   string `json:"status"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Bytes    int64  `json:"bytes"`
	Error    string `json:"error,omitempty"`
}

type reportSummary struct {
	Total      int    `json:"total"`
	Skipped    int    `json:"skipped"`
	Downloaded int    `json:"downloaded"`
	Failed     int    `json:"failed"`
	Bytes      int64  `json:"bytes"`
	Version    string `json:"version,omitempty"`
}

type report struct {
	Results []reportRow   `json:"results"`
	Summary reportSummary `json:"summary"`
}

func buildReport(results []orchestrator.Result, version string) report {
	r := report{
		Results: make([]reportRow, 0, len(results)),
		Summary: reportSummary{Total: len(results), Version: version},
	}
	for _, res := range results {
		row := reportRow{
			Artifact: res.Artifact,
			Group:    res.Group,
			Status:   string(res.Status),
			Path:     res.LocalPath,
			URL:      res.URL,
			Bytes:    res.Bytes,
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		switch res.Status {
		case orchestrator.StatusSkipped:
			r.Summary.Skipped++
		case orchestrator.StatusDownloaded:
			r.Summary.Downloaded++
			r.Summary.Bytes += res.Bytes
		case orchestrator.StatusFailed:
			r.Summary.Failed++
		}
		r.Results = append(r.Results, row)
	}
	return r
}

// writeReport prints one line per artifact followed by a summary.
func writeReport(w io.Writer, results []orchestrator.Result, version, format string) error {
	r := buildReport(results, version)
	if format == FormatJSON {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(r.Results) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to sync, enable at least one build in the configuration")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ARTIFACT\tGROUP\tSTATUS\tSIZE\tPATH")
	for _, row := range r.Results {
		size := "-"
		if row.Status == string(orchestrator.StatusDownloaded) {
			size = humanize.Bytes(uint64(row.Bytes))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Artifact, row.Group, row.Status, size, row.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, row := range r.Results {
		if row.Error != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", row.Artifact, row.Error)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d up to date, %d downloaded (%s), %d failed\n",
		r.Summary.Skipped, r.Summary.Downloaded, humanize.Bytes(uint64(r.Summary.Bytes)), r.Summary.Failed)
	return err
}
