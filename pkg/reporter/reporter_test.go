package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/version"
)

func versionMap(t *testing.T) version.VersionMap {
	t.Helper()
	m, err := version.Build([]version.TagReference{
		{Ref: "refs/tags/1.0.0", Target: version.CommitTarget("0123456789abcdef")},
		{Ref: "refs/tags/1.1.0", Target: version.TagTarget("fedcba9876543210")},
	}, []string{"1.0.0", "1.1.0"})
	require.NoError(t, err)
	return m
}

func TestTableVersions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("table", &buf).Versions(versionMap(t)))

	out := buf.String()
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "0123456")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Regexp(t, `latest\s+1\.1\.0\s+tag\s+fedcba9`, out)
}

func TestJSONVersions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("json", &buf).Versions(versionMap(t)))

	var out struct {
		Count    int `json:"count"`
		Versions []struct {
			Version string `json:"version"`
			Tag     string `json:"tag"`
		} `json:"versions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 3, out.Count)
	assert.Equal(t, "latest", out.Versions[2].Version)
	assert.Equal(t, "1.1.0", out.Versions[2].Tag)
}

func TestYAMLInventory(t *testing.T) {
	var buf bytes.Buffer
	entries := []inventory.Entry{{Version: "1.1.0", Commit: "abc", Artifact: "server-linux-x64", Size: 42, Path: "out/x"}}
	require.NoError(t, New("yaml", &buf).Inventory(entries))

	var out struct {
		Entries []inventory.Entry `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, entries, out.Entries)
}

func TestTableInventoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("", &buf).Inventory(nil))
	assert.Equal(t, "No downloaded server bundles found.\n", buf.String())
}
