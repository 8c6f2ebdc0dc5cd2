package reporter

import (
	"io"
	"os"

	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/version"
)

type Reporter interface {
	// Versions prints every resolvable version key, Latest included.
	Versions(versions version.VersionMap) error

	// Inventory prints the bundles found in a download directory.
	Inventory(entries []inventory.Entry) error
}

// New returns the reporter for format writing to w (stdout when nil).
// Unknown formats fall back to a table.
func New(format string, w io.Writer) Reporter {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "json":
		return &JSONReporter{w: w}
	case "yaml":
		return &YAMLReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}

// versionRow is one line of a version listing.
type versionRow struct {
	Version string `json:"version" yaml:"version"`
	Tag     string `json:"tag" yaml:"tag"`
	Type    string `json:"type" yaml:"type"`
	SHA     string `json:"sha" yaml:"sha"`
}

func versionRows(versions version.VersionMap) []versionRow {
	keys := versions.Keys()
	rows := make([]versionRow, 0, len(keys))
	for _, k := range keys {
		ref := versions[k]
		rows = append(rows, versionRow{
			Version: k,
			Tag:     ref.Version(),
			Type:    ref.Target.Raw,
			SHA:     ref.Target.SHA,
		})
	}
	return rows
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
