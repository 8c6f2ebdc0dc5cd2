package reporter

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/version"
)

type YAMLReporter struct {
	w io.Writer
}

func (r *YAMLReporter) Versions(versions version.VersionMap) error {
	return r.encode(map[string]any{"versions": versionRows(versions)})
}

func (r *YAMLReporter) Inventory(entries []inventory.Entry) error {
	if entries == nil {
		entries = []inventory.Entry{}
	}
	return r.encode(map[string]any{"entries": entries})
}

func (r *YAMLReporter) encode(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
