package version

import (
	"fmt"
	"slices"

	"github.com/vscode-server-fetcher/pkg/errkind"
)

// Latest aliases the lexicographically greatest concrete version.
const Latest = "latest"

// VersionMap maps a version string, or Latest, to its tag reference.
type VersionMap map[string]TagReference

// Build keeps the refs whose version is an official release and adds the
// Latest alias. An empty result is ErrEmptyVersionSet.
func Build(refs []TagReference, releases []string) (VersionMap, error) {
	official := make(map[string]bool, len(releases))
	for _, r := range releases {
		official[r] = true
	}

	m := make(VersionMap)
	for _, ref := range refs {
		v := ref.Version()
		if !official[v] || v == Latest {
			continue
		}
		m[v] = ref
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w (%d tags, %d releases)", errkind.ErrEmptyVersionSet, len(refs), len(releases))
	}

	versions := m.Versions()
	m[Latest] = m[versions[len(versions)-1]]
	return m, nil
}

// Versions returns the concrete versions in ascending lexicographic order.
func (m VersionMap) Versions() []string {
	versions := make([]string, 0, len(m))
	for v := range m {
		if v != Latest {
			versions = append(versions, v)
		}
	}
	slices.Sort(versions)
	return versions
}

// Keys returns every resolvable key: the concrete versions followed by Latest.
func (m VersionMap) Keys() []string {
	keys := m.Versions()
	if _, ok := m[Latest]; ok {
		keys = append(keys, Latest)
	}
	return keys
}

// Newest returns up to n concrete versions, greatest first.
func (m VersionMap) Newest(n int) []string {
	if n <= 0 {
		return nil
	}
	versions := m.Versions()
	slices.Reverse(versions)
	if n < len(versions) {
		versions = versions[:n]
	}
	return versions
}

func (m VersionMap) Lookup(version string) (TagReference, error) {
	ref, ok := m[version]
	if !ok {
		return TagReference{}, fmt.Errorf("%w: %s", errkind.ErrUnknownVersion, version)
	}
	return ref, nil
}
