package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	testCases := []struct {
		user   string
		format string
	}{
		{user: "custom.json", format: "json"},
		{user: "custom.yaml", format: "yaml"},
		{user: "custom.yml", format: "yaml"},
		{user: "custom.toml", format: "toml"},
		{user: "custom.conf", format: "json"},
	}

	for _, tc := range testCases {
		t.Run(tc.user, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tc.user)
			var first string
			switch tc.format {
			case "json":
				first = j[0]
			case "yaml":
				first = y[0]
			case "toml":
				first = to[0]
			}
			assert.Equal(t, tc.user, first)
		})
	}
}

func TestConfigCandidatePathsWorkingDir(t *testing.T) {
	j, _, to := ConfigCandidatePaths("")
	require.NotEmpty(t, j)
	assert.Equal(t, "fourccgen.json", filepath.Base(j[0]))
	assert.Equal(t, "fourccgen.toml", filepath.Base(to[0]))
}

func TestDefaultConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME is not consulted on windows")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "fourccgen"), dir)
}
