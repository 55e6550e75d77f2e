package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		RepoURL:    DefaultRepoURL,
		InstallDir: DefaultInstallDir,
		StateDir:   defaultStateDir,
		SetupPort:  DefaultSetupPort,
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, DefaultInstallDir+"/requirements.txt", cfg.ManifestPath())
	assert.Equal(t, DefaultInstallDir+"/setup_gui.service", cfg.UnitSourcePath())
	assert.Equal(t, defaultStateDir+"/journal.db", cfg.JournalPath())
}

func TestApplyOverrides(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.applyOverrides([]byte("repo_url: https://mirror.example/installer.git\nbranch: develop\nsetup_port: 9100\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example/installer.git", cfg.RepoURL)
	assert.Equal(t, "develop", cfg.Branch)
	assert.Equal(t, 9100, cfg.SetupPort)
	// Install dir stays an embedded constant even under overrides.
	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
}

func TestApplyOverridesPartial(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.applyOverrides([]byte("branch: testing\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRepoURL, cfg.RepoURL)
	assert.Equal(t, "testing", cfg.Branch)
	assert.Equal(t, DefaultSetupPort, cfg.SetupPort)
}

func TestApplyOverridesInvalidYAML(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.applyOverrides([]byte("repo_url: [broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestApplyOverrideFileMissingIsNotAnError(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.applyOverrideFile(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRepoURL, cfg.RepoURL)
}

func TestApplyOverrideFileReadsYAML(t *testing.T) {
	cfg := defaultConfig()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("setup_port: 8080\n"), 0o644))

	require.NoError(t, cfg.applyOverrideFile(path))
	assert.Equal(t, 8080, cfg.SetupPort)
}

func TestSupportedArchitectures(t *testing.T) {
	cfg := defaultConfig()

	cfg.Architecture = "amd64"
	assert.True(t, cfg.IsSupportedArchitecture())
	cfg.Architecture = "arm64"
	assert.True(t, cfg.IsSupportedArchitecture())
	cfg.Architecture = "mips"
	assert.False(t, cfg.IsSupportedArchitecture())
}
