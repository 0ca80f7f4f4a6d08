// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/scanprep/internal/core"
)

func resetConfig(t *testing.T) {
	t.Helper()

	orig := globalConfig
	t.Cleanup(func() { globalConfig = orig })
}

func TestInitialize_Defaults(t *testing.T) {
	resetConfig(t)

	require.NoError(t, Initialize())

	cfg := Get()
	require.False(t, cfg.Debug)
	require.Equal(t, core.TargetPackages, cfg.Packages)
	require.Equal(t, core.LogDir, cfg.LogDir)
	require.Equal(t, "error", cfg.Log.Level)
}

func TestInitialize_DebugFromBareEnvVar(t *testing.T) {
	resetConfig(t)
	t.Setenv("DEBUG", "true")

	require.NoError(t, Initialize())

	cfg := Get()
	require.True(t, cfg.Debug)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestInitialize_PackagesOverride(t *testing.T) {
	resetConfig(t)
	t.Setenv("SCANPREP_PACKAGES", "nmap, tcpdump ,,curl")

	require.NoError(t, Initialize())
	require.Equal(t, []string{"nmap", "tcpdump", "curl"}, Get().Packages)
}

func TestInitialize_LogDirOverride(t *testing.T) {
	resetConfig(t)
	t.Setenv("SCANPREP_LOG_DIR", "/tmp/scanprep-test-logs")

	require.NoError(t, Initialize())
	require.Equal(t, "/tmp/scanprep-test-logs", Get().LogDir)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Packages = []string{"nmap", "  "}
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.LogDir = ""
	require.Error(t, cfg.Validate())
}

func TestSet(t *testing.T) {
	resetConfig(t)

	require.Error(t, Set(nil))

	cfg := defaultConfig()
	cfg.Packages = []string{"tcpdump"}
	require.NoError(t, Set(&cfg))
	require.Equal(t, []string{"tcpdump"}, Get().Packages)
}
