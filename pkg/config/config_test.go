package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()
	require.Equal(t, "enforce", cfg.MonitorMode)
	require.Equal(t, "fail_closed", cfg.MonitorFailureMode)
}

func TestLoadFile_OverridesNonEmptyFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "covenant.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitorMode: log_only\n"), 0o644))

	base := config.Load()
	merged, err := config.LoadFile(base, path)
	require.NoError(t, err)
	require.Equal(t, "log_only", merged.MonitorMode)
	require.Equal(t, base.MonitorFailureMode, merged.MonitorFailureMode)
}

func TestBundleLoader_LoadAllAndGet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.ccl"), []byte("permit read on '/data/**'"), 0o644))

	loader := config.NewBundleLoader(dir)
	var reloaded *config.PolicyBundle
	loader.OnReload(func(b *config.PolicyBundle) { reloaded = b })

	require.NoError(t, loader.LoadAll())
	require.NotNil(t, reloaded)
	require.Equal(t, "default", reloaded.Name)

	bundle, ok := loader.Get("default")
	require.True(t, ok)
	require.Equal(t, "permit read on '/data/**'", bundle.Source)
}
