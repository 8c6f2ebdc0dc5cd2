package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifacts(t *testing.T) {
	set := Default()

	all, err := set.Artifacts(All)
	require.NoError(t, err)
	assert.Equal(t, []Artifact{"server-linux-alpine", "server-linux-x64", "server-win32-x64"}, all)

	one, err := set.Artifacts("windows")
	require.NoError(t, err)
	assert.Equal(t, []Artifact{"server-win32-x64"}, one)

	_, err = set.Artifacts("darwin")
	require.Error(t, err)
}

func TestValid(t *testing.T) {
	set := Default()
	assert.True(t, set.Valid("linux"))
	assert.True(t, set.Valid(All))
	assert.False(t, set.Valid("darwin"))
	assert.Equal(t, []string{"alpine", "linux", "windows"}, set.Names())
}
