package reporter

import (
	"encoding/json"
	"io"

	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/version"
)

type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Versions(versions version.VersionMap) error {
	type output struct {
		Count    int          `json:"count"`
		Versions []versionRow `json:"versions"`
	}

	rows := versionRows(versions)
	return r.encode(output{
		Count:    len(rows),
		Versions: rows,
	})
}

func (r *JSONReporter) Inventory(entries []inventory.Entry) error {
	type output struct {
		Count   int               `json:"count"`
		Entries []inventory.Entry `json:"entries"`
	}

	if entries == nil {
		entries = []inventory.Entry{}
	}
	return r.encode(output{
		Count:   len(entries),
		Entries: entries,
	})
}

func (r *JSONReporter) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
