package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "1.1.0", "commit:bbb", "server-linux-x64", "stable"), "linux")
	writeBundle(t, filepath.Join(dir, "1.1.0", "commit\uf03abbb", "server-win32-x64", "stable"), "windows!")
	writeBundle(t, filepath.Join(dir, "1.1.0", "notes.txt"), "ignored")
	writeBundle(t, filepath.Join(dir, "1.1.0", "unrelated", "server-linux-x64", "stable"), "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "1.0.0", "commit:aaa", "server-linux-alpine"), 0o755))

	entries, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{
			Version:  "1.1.0",
			Commit:   "bbb",
			Artifact: "server-linux-x64",
			Size:     5,
			Path:     filepath.Join(dir, "1.1.0", "commit:bbb", "server-linux-x64", "stable"),
		},
		{
			Version:  "1.1.0",
			Commit:   "bbb",
			Artifact: "server-win32-x64",
			Size:     8,
			Path:     filepath.Join(dir, "1.1.0", "commit\uf03abbb", "server-win32-x64", "stable"),
		},
	}, entries)
}

func TestScanMissingDirectory(t *testing.T) {
	entries, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	require.Empty(t, entries)
}
