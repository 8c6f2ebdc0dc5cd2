// Package platform names the server bundles that can be downloaded.
package platform

import (
	"fmt"
	"slices"
	"strings"
)

// All selects every known platform.
const All = "all"

// Artifact is the name of a platform bundle on the update host, e.g.
// "server-linux-x64".
type Artifact string

// Set maps a user-facing platform name to its artifact.
type Set map[string]Artifact

func Default() Set {
	return Set{
		"windows": "server-win32-x64",
		"linux":   "server-linux-x64",
		"alpine":  "server-linux-alpine",
	}
}

// Names returns the platform names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Valid reports whether name is a known platform or All.
func (s Set) Valid(name string) bool {
	_, ok := s[name]
	return ok || name == All
}

// Artifacts returns the artifact for name, or every artifact for All, sorted.
func (s Set) Artifacts(name string) ([]Artifact, error) {
	if name == All {
		artifacts := make([]Artifact, 0, len(s))
		for _, n := range s.Names() {
			artifacts = append(artifacts, s[n])
		}
		return artifacts, nil
	}
	a, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q (valid: %s, %s)", name, strings.Join(s.Names(), ", "), All)
	}
	return []Artifact{a}, nil
}
