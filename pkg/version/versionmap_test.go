package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vscode-server-fetcher/pkg/errkind"
)

func ref(v string, target Target) TagReference {
	return TagReference{Ref: "refs/tags/" + v, Target: target}
}

func TestVersionIsLastRefSegment(t *testing.T) {
	assert.Equal(t, "1.85.0", TagReference{Ref: "refs/tags/1.85.0"}.Version())
	assert.Equal(t, "1.0.0", TagReference{Ref: "refs/tags/release/1.0.0"}.Version())
}

func TestBuild(t *testing.T) {
	a := ref("v1.0.0", CommitTarget("A"))
	b := ref("v1.1.0", CommitTarget("B"))

	m, err := Build([]TagReference{a, b}, []string{"v1.0.0", "v1.1.0"})
	require.NoError(t, err)
	require.Equal(t, VersionMap{"v1.0.0": a, "v1.1.0": b, Latest: b}, m)
}

func TestBuildDropsUnreleasedTags(t *testing.T) {
	refs := []TagReference{
		ref("1.0.0", CommitTarget("A")),
		ref("1.1.0-rc1", CommitTarget("B")),
		ref("1.1.0", TagTarget("C")),
	}
	releases := []string{"1.0.0", "1.1.0", "0.9.0"}

	m, err := Build(refs, releases)
	require.NoError(t, err)
	require.Equal(t, []string{"1.0.0", "1.1.0"}, m.Versions())
	require.Equal(t, []string{"1.0.0", "1.1.0", Latest}, m.Keys())
	require.Equal(t, m["1.1.0"], m[Latest])
}

func TestBuildLatestIsLexicographicMax(t *testing.T) {
	refs := []TagReference{
		ref("1.9.0", CommitTarget("A")),
		ref("1.10.0", CommitTarget("B")),
		ref("1.2.0", CommitTarget("C")),
	}
	m, err := Build(refs, []string{"1.9.0", "1.10.0", "1.2.0"})
	require.NoError(t, err)

	versions := m.Versions()
	require.Equal(t, m[versions[len(versions)-1]], m[Latest])
	require.Equal(t, "1.9.0", m[Latest].Version())
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build([]TagReference{ref("1.0.0-rc", CommitTarget("A"))}, []string{"1.0.0"})
	require.ErrorIs(t, err, errkind.ErrEmptyVersionSet)

	_, err = Build(nil, nil)
	require.ErrorIs(t, err, errkind.ErrEmptyVersionSet)
}

func TestNewest(t *testing.T) {
	m, err := Build([]TagReference{
		ref("1.0.0", CommitTarget("A")),
		ref("1.1.0", CommitTarget("B")),
		ref("1.2.0", CommitTarget("C")),
	}, []string{"1.0.0", "1.1.0", "1.2.0"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.2.0"}, m.Newest(1))
	assert.Equal(t, []string{"1.2.0", "1.1.0"}, m.Newest(2))
	assert.Equal(t, []string{"1.2.0", "1.1.0", "1.0.0"}, m.Newest(10))
	assert.Nil(t, m.Newest(0))
}

func TestLookup(t *testing.T) {
	m, err := Build([]TagReference{ref("1.0.0", CommitTarget("A"))}, []string{"1.0.0"})
	require.NoError(t, err)

	got, err := m.Lookup(Latest)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", got.Version())

	_, err = m.Lookup("2.0.0")
	require.ErrorIs(t, err, errkind.ErrUnknownVersion)
}
