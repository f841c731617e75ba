package mods

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	versionString = "v0.4.1-rc2"
	versionGitSHA = "8c13fa02"
	buildTimestamp = "2026/08/01T10:30"
	goVersionString = "1.23.0"

	ver := GetVersion()
	require.NotNil(t, ver)
	require.Equal(t, 0, ver.Major)
	require.Equal(t, 4, ver.Minor)
	require.Equal(t, 1, ver.Patch)
	require.Equal(t, "8c13fa02", ver.GitSHA)
	require.Equal(t, "V0.4.1-RC2", DisplayVersion())
	require.Equal(t, "V0.4.1-RC2 (8c13fa02 2026/08/01T10:30)", VersionString())
	require.Equal(t, "1.23.0", BuildCompiler())
	require.Equal(t, "2026/08/01T10:30", BuildTimestamp())
}
